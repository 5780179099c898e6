package weather

// Outlook summarizes a multi-day forecast.
type Outlook struct {
	Days             int       `json:"days"`
	MinTempC         float64   `json:"minTempC"`
	MaxTempC         float64   `json:"maxTempC"`
	MeanChanceOfRain float64   `json:"meanChanceOfRain"`
	Category         Condition `json:"category"`
}

// SummarizeForecast combines the forecast days into a single Outlook.
// Temperatures take the extremes, rain chance is averaged and the category
// is selected by majority (earliest day wins a tie).
func SummarizeForecast(days []ForecastDay) Outlook {
	if len(days) == 0 {
		return Outlook{Category: ConditionUnknown}
	}

	var sumRain float64
	minTemp := days[0].MinTempC
	maxTemp := days[0].MaxTempC

	conditionCounts := make(map[Condition]int)
	order := make([]Condition, 0, len(days))

	for _, d := range days {
		if d.MinTempC < minTemp {
			minTemp = d.MinTempC
		}
		if d.MaxTempC > maxTemp {
			maxTemp = d.MaxTempC
		}
		sumRain += float64(d.ChanceOfRain)

		if conditionCounts[d.Category] == 0 {
			order = append(order, d.Category)
		}
		conditionCounts[d.Category]++
	}

	// Pick majority condition.
	bestCond := ConditionUnknown
	bestCount := 0
	for _, cond := range order {
		if count := conditionCounts[cond]; count > bestCount {
			bestCount = count
			bestCond = cond
		}
	}

	return Outlook{
		Days:             len(days),
		MinTempC:         minTemp,
		MaxTempC:         maxTemp,
		MeanChanceOfRain: sumRain / float64(len(days)),
		Category:         bestCond,
	}
}

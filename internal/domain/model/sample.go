package model

// SampleEvaluations returns a small seed portfolio for the memory backend and
// the seed tool. Values span all four quadrants.
func SampleEvaluations() []Row {
	return []Row{
		{
			ColProjectID: "P001", ColProjectName: "Next-Gen Payments",
			ColVision: "5", ColResonance: "4", ColContext: "5",
			ColMarket: "4", ColSpeed: "5", ColFriction: "4",
			ColWorkHours: "120", ColLeadPerson: "Mori", ColStatus: "Green",
			ColInsight:       "Strong pull from two enterprise pilots.",
			ColTargetRevenue: "500000", ColActualRevenue: "410000",
			ColTargetProfit: "90000", ColActualProfit: "72000",
			ColKPIName: "Pilot conversions", ColKPITarget: "5", ColKPIActual: "3",
			ColDecisionDate: "2026-10-01", ColVerdict: "Pending",
		},
		{
			ColProjectID: "P002", ColProjectName: "Internal SNS Prototype",
			ColVision: "5", ColResonance: "2", ColContext: "3",
			ColMarket: "2", ColSpeed: "2", ColFriction: "1",
			ColWorkHours: "40", ColLeadPerson: "", ColStatus: "Yellow",
			ColInsight:       "Vision is there but nobody is asking for it.",
			ColTargetRevenue: "0", ColActualRevenue: "0",
			ColTargetProfit: "0", ColActualProfit: "-12000",
			ColKPIName: "Weekly actives", ColKPITarget: "200", ColKPIActual: "38",
			ColDecisionDate: "2026-09-15", ColVerdict: "Pending",
		},
		{
			ColProjectID: "P003", ColProjectName: "Cross-Border EC Bridge",
			ColVision: "3", ColResonance: "3", ColContext: "4",
			ColMarket: "5", ColSpeed: "4", ColFriction: "3",
			ColWorkHours: "80", ColLeadPerson: "Tanaka", ColStatus: "Green",
			ColInsight:       "Market is hot; strategy fit still unproven.",
			ColTargetRevenue: "300000", ColActualRevenue: "350000",
			ColTargetProfit: "60000", ColActualProfit: "81000",
			ColKPIName: "Merchant signups", ColKPITarget: "50", ColKPIActual: "61",
			ColDecisionDate: "2026-11-30", ColVerdict: "Scale-up",
		},
		{
			ColProjectID: "P004", ColProjectName: "Legacy Refit",
			ColVision: "2", ColResonance: "2", ColContext: "2",
			ColMarket: "1", ColSpeed: "1", ColFriction: "1",
			ColWorkHours: "0", ColLeadPerson: "Ito", ColStatus: "Red",
			ColInsight:       "On hold; hours reassigned last month.",
			ColTargetRevenue: "100000", ColActualRevenue: "20000",
			ColTargetProfit: "10000", ColActualProfit: "-5000",
			ColKPIName: "Modules migrated", ColKPITarget: "12", ColKPIActual: "2",
			ColDecisionDate: "2026-08-01", ColVerdict: "Exit",
		},
	}
}

// SampleSettings returns seed settings entries, including the per-rating
// textual definitions keyed Score_<n>_Def.
func SampleSettings() []Row {
	return []Row{
		{ColKey: "North_Star", ColValue: "Double down only where strategy and market pull align."},
		{ColKey: "Score_1_Def", ColValue: "No evidence"},
		{ColKey: "Score_2_Def", ColValue: "Weak signal"},
		{ColKey: "Score_3_Def", ColValue: "Mixed signal"},
		{ColKey: "Score_4_Def", ColValue: "Clear signal"},
		{ColKey: "Score_5_Def", ColValue: "Proven"},
	}
}

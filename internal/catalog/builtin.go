package catalog

import (
	"fmt"
	"math/rand"
)

const (
	VariantFull   = "full"
	VariantSimple = "simple"
)

// Palette is the default series color cycle.
var Palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Builtin returns the source for a named built-in variant.
func Builtin(variant string) (Source, error) {
	switch variant {
	case VariantFull, "":
		return SourceFunc(Full), nil
	case VariantSimple:
		return SourceFunc(Simple), nil
	default:
		return nil, fmt.Errorf("unknown catalog variant %q", variant)
	}
}

// Full is the ten-chart catalog.
func Full() (*Catalog, error) {
	b := NewBuilder(VariantFull)

	b.Add(Descriptor{
		Kind: KindLine,
		Config: Config{
			Title:  "Highest and lowest temperature, next 15 days",
			Labels: seqLabels(4, 18),
			XLabel: "Day",
			YLabel: "Temperature (°C)",
			Legend: true,
			Series: []Series{
				{Label: "High", Color: Palette[3], Values: []float64{32, 33, 34, 34, 33, 31, 30, 29, 30, 29, 26, 23, 21, 25, 31}},
				{Label: "Low", Color: Palette[0], Values: []float64{19, 19, 20, 22, 22, 21, 22, 16, 18, 18, 17, 14, 15, 16, 16}},
			},
		},
		Description: "Line charts show how values change over time or another continuous variable. Use them for time series and trend analysis.",
		Scenarios:   []string{"Time series analysis", "Trend forecasting and monitoring", "Comparing several variables"},
	})

	b.Add(Descriptor{
		Kind: KindBar,
		Config: Config{
			Title:  "Taobao and Tmall GMV, FY2013-FY2019",
			Labels: []string{"FY2013", "FY2014", "FY2015", "FY2016", "FY2017", "FY2018", "FY2019"},
			XLabel: "Fiscal year",
			YLabel: "GMV (100M CNY)",
			Series: []Series{
				{Label: "GMV", Color: Palette[9], Values: []float64{10770, 16780, 24440, 30920, 37670, 48200, 57270}},
			},
		},
		Description: "Column charts compare values across categories.",
		Scenarios:   []string{"Comparing categories", "Performance indicators", "Market share"},
	})

	b.Add(Descriptor{
		Kind: KindHorizontalBar,
		Config: Config{
			Title: "Online substitution rate by product category",
			Labels: []string{
				"Household services", "Air and rail tickets", "Furniture", "Phones and accessories",
				"Computers", "Car supplies", "Top-ups", "Personal care",
				"Books and media", "Dining and travel", "Home appliances",
				"Food and drink", "Household goods", "Insurance and tickets",
				"Clothing and textiles", "Digital products", "Other goods", "Crafts and collectibles",
			},
			XLabel: "Substitution rate",
			Series: []Series{
				{Label: "Rate", Color: Palette[0], Values: []float64{
					0.959, 0.951, 0.935, 0.924, 0.893, 0.892, 0.865, 0.863,
					0.860, 0.856, 0.854, 0.835, 0.826, 0.816, 0.798, 0.765, 0.763, 0.67,
				}},
			},
		},
		Description: "Bar charts are horizontal column charts, suited to long category names.",
		Scenarios:   []string{"Long category names", "Rankings", "Survey results"},
	})

	b.Add(Descriptor{
		Kind: KindStackedArea,
		Config: Config{
			Title:  "Logistics cost by carrier",
			Labels: seqLabels(1, 12),
			XLabel: "Month",
			YLabel: "Cost (10k CNY)",
			Legend: true,
			Series: []Series{
				{Label: "Carrier A", Color: Palette[0], Values: []float64{198, 215, 245, 222, 200, 236, 201, 253, 236, 200, 266, 290}},
				{Label: "Carrier B", Color: Palette[1], Values: []float64{203, 236, 200, 236, 269, 216, 298, 333, 301, 349, 360, 368}},
				{Label: "Carrier C", Color: Palette[2], Values: []float64{185, 205, 226, 199, 238, 200, 250, 209, 246, 219, 253, 288}},
			},
		},
		Description: "Stacked area charts show how several series accumulate over time.",
		Scenarios:   []string{"Cumulative effect of several series", "Composition analysis", "Composition over time"},
	})

	b.Add(Descriptor{
		Kind: KindHistogram,
		Config: Config{
			Title:  "Exam score distribution",
			XLabel: "Score",
			YLabel: "Frequency",
			Bins:   8,
			Series: []Series{
				{Label: "Scores", Color: Palette[4], Values: sampleScores(42, 50)},
			},
		},
		Description: "Histograms show how data is distributed by counting values per interval.",
		Scenarios:   []string{"Distribution analysis", "Frequency counts", "Outlier detection"},
	})

	b.Add(Descriptor{
		Kind: KindPie,
		Config: Config{
			Title:  "Share by category",
			Labels: []string{"A", "B", "C", "D", "E", "F"},
			Legend: true,
			Series: []Series{
				{Label: "Share", Values: []float64{20, 50, 10, 15, 30, 55}},
			},
		},
		Description: "Pie charts show each part's share of the whole.",
		Scenarios:   []string{"Proportions", "Composition", "Market share"},
	})

	b.Add(Descriptor{
		Kind: KindScatter,
		Config: Config{
			Title:  "Car speed vs braking distance",
			XLabel: "Speed (km/h)",
			YLabel: "Braking distance (m)",
			Series: []Series{
				{Label: "Braking", Color: Palette[0], Points: brakingPoints()},
			},
		},
		Description: "Scatter plots show the relationship between two variables.",
		Scenarios:   []string{"Relationships between variables", "Correlation", "Clustering"},
	})

	b.Add(Descriptor{
		Kind: KindBox,
		Config: Config{
			Title:  "National power generation, 2017 vs 2018",
			YLabel: "Generation (100M kWh)",
			Legend: true,
			Series: []Series{
				{Label: "2018", Color: Palette[0], Values: []float64{5200, 5254.5, 5283.4, 5107.8, 5443.3, 5550.6, 6400.2, 6404.9, 5483.1, 5330.2, 5543, 6199.9}},
				{Label: "2017", Color: Palette[1], Values: []float64{4605.2, 4710.3, 5168.9, 4767.2, 4947, 5203, 6047.4, 5945.5, 5219.6, 5038.1, 5196.3, 5698.6}},
			},
		},
		Description: "Box plots summarize a distribution by its quartiles and range.",
		Scenarios:   []string{"Distribution shape", "Outlier detection", "Comparing groups"},
	})

	b.Add(Descriptor{
		Kind: KindRadar,
		Config: Config{
			Title:  "Holland occupational interest profile",
			Labels: []string{"Investigative", "Artistic", "Social", "Enterprising", "Conventional", "Realistic"},
			Legend: true,
			Series: []Series{
				{Label: "Sample 1", Color: Palette[0], Values: []float64{0.40, 0.32, 0.35, 0.30, 0.30, 0.88}},
				{Label: "Sample 2", Color: Palette[1], Values: []float64{0.85, 0.35, 0.30, 0.40, 0.40, 0.30}},
				{Label: "Sample 3", Color: Palette[2], Values: []float64{0.43, 0.89, 0.30, 0.28, 0.22, 0.30}},
				{Label: "Sample 4", Color: Palette[3], Values: []float64{0.30, 0.25, 0.48, 0.85, 0.45, 0.40}},
				{Label: "Sample 5", Color: Palette[4], Values: []float64{0.20, 0.38, 0.87, 0.45, 0.32, 0.28}},
				{Label: "Sample 6", Color: Palette[5], Values: []float64{0.34, 0.31, 0.38, 0.40, 0.92, 0.28}},
			},
		},
		Description: "Radar charts compare several dimensions at once.",
		Scenarios:   []string{"Multi-dimensional comparison", "Capability assessment", "Overall evaluation"},
	})

	b.Add(Descriptor{
		Kind: KindErrorBar,
		Config: Config{
			Title:  "Measurements with error",
			Labels: []string{"0", "1", "2", "3", "4"},
			XLabel: "Sample",
			YLabel: "Measurement",
			Series: []Series{
				{Label: "Measurement", Color: Palette[0], Values: []float64{25, 32, 34, 20, 25}, Errors: []float64{3, 5, 2, 3, 3}},
			},
		},
		Description: "Error bar charts show the uncertainty or variability of measurements.",
		Scenarios:   []string{"Measurement uncertainty", "Experimental data", "Statistical significance"},
	})

	return b.Build()
}

// Simple is the five-chart catalog.
func Simple() (*Catalog, error) {
	b := NewBuilder(VariantSimple)

	b.Add(Descriptor{
		Kind: KindLine,
		Config: Config{
			Title:  "Monthly sales trend",
			Labels: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"},
			Series: []Series{{Label: "Sales", Color: "#ff6b6b", Fill: "#ff6b6b1a", Values: []float64{65, 59, 80, 81, 56, 55}}},
		},
		Description: "Shows how data changes over time.",
	})
	b.Add(Descriptor{
		Kind: KindBar,
		Config: Config{
			Title:  "Units sold per product",
			Labels: []string{"Product A", "Product B", "Product C", "Product D"},
			Series: []Series{{Label: "Units", Color: "#45b7d1", Values: []float64{12, 19, 3, 5}}},
		},
		Description: "Compares values across categories.",
	})
	b.Add(Descriptor{
		Kind: KindPie,
		Config: Config{
			Title:  "Headcount by department",
			Labels: []string{"Engineering", "Marketing", "Sales", "Admin"},
			Series: []Series{{Label: "Headcount", Values: []float64{30, 25, 20, 25}}},
		},
		Description: "Shows each part's share of the whole.",
	})
	b.Add(Descriptor{
		Kind: KindScatter,
		Config: Config{
			Title: "Study time vs score",
			Series: []Series{{Label: "Study time vs score", Color: "#6a89cc", Points: []Point{
				{X: 2, Y: 65}, {X: 3, Y: 75}, {X: 4, Y: 80}, {X: 5, Y: 85}, {X: 6, Y: 90},
			}}},
		},
		Description: "Shows the relationship between two variables.",
	})
	b.Add(Descriptor{
		Kind: KindRadar,
		Config: Config{
			Title:  "Personal capability radar",
			Labels: []string{"Technical", "Communication", "Leadership", "Innovation", "Execution"},
			Series: []Series{{Label: "Assessment", Color: "#ff9f40", Values: []float64{85, 70, 90, 75, 80}}},
		},
		Description: "Visualizes several dimensions for one subject.",
	})

	return b.Build()
}

func seqLabels(from, to int) []string {
	out := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, fmt.Sprintf("%d", i))
	}
	return out
}

// sampleScores draws n integer scores in [0, 100) from a fixed seed so the
// histogram is identical on every run.
func sampleScores(seed int64, n int) []float64 {
	r := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(r.Intn(100))
	}
	return out
}

func brakingPoints() []Point {
	distances := []float64{
		0.5, 2.0, 4.4, 7.9, 12.3, 17.7, 24.1, 31.5, 39.9, 49.2,
		59.5, 70.8, 83.1, 96.4, 110.7, 126.0, 142.2, 159.4, 177.6, 196.8,
	}
	points := make([]Point, len(distances))
	for i, d := range distances {
		points[i] = Point{X: float64(10 + i*10), Y: d}
	}
	return points
}

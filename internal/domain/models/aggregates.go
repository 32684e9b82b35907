package models

// Агрегаты пересчитываются на каждое чтение, не хранятся
type (
	DailyCount struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}

	DeviceCount struct {
		Device string `json:"device"`
		Count  int    `json:"count"`
	}

	BrowserCount struct {
		Browser string `json:"browser"`
		Count   int    `json:"count"`
	}

	SourceCount struct {
		Source string `json:"source"`
		Count  int    `json:"count"`
	}

	HourlyCount struct {
		Hour  string `json:"hour"`
		Count int    `json:"count"`
	}

	LinkSummary struct {
		Link     Link
		ShortURL string
		Clicks   int
	}

	Dashboard struct {
		TotalClicks int
		Daily       []DailyCount
		Devices     []DeviceCount
		Browsers    []BrowserCount
		Sources     []SourceCount
		Hourly      []HourlyCount
		PeakHour    string
		Links       []LinkSummary
	}
)

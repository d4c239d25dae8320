package models

// Requests for the screener HTTP endpoints.

type ScreenRequest struct {
	Preset string `param:"preset" validate:"required,max=128"`
}

type GreeksRequest struct {
	Chain  string  `query:"chain" json:"chain"`
	Ticker string  `query:"ticker" json:"ticker" validate:"required_without=Chain,omitempty,max=12"`
	Expiry string  `query:"expiry" json:"expiry" validate:"required_without=Chain,omitempty,datetime=2006-01-02"`
	Strike float64 `query:"strike" json:"strike" validate:"required_without=Chain,omitempty,gt=0"`
	Put    bool    `query:"put" json:"put"`
}

type ValidatePresetRequest struct {
	Name    string        `json:"name" default:"adhoc" validate:"max=128"`
	Fields  []PresetField `json:"fields" validate:"required,min=1,dive"`
	Offline bool          `json:"offline"`
}

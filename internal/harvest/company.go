package harvest

import "context"

// Company is the account-level settings record for the authenticated
// Harvest account.
type Company struct {
	BaseURI              string `json:"base_uri"`
	FullDomain           string `json:"full_domain"`
	Name                 string `json:"name"`
	IsActive             bool   `json:"is_active"`
	WeekStartDay         string `json:"week_start_day"`
	WantsTimestampTimers bool   `json:"wants_timestamp_timers"`
	TimeFormat           string `json:"time_format"`
	DateFormat           string `json:"date_format"`
	PlanType             string `json:"plan_type"`
	Clock                string `json:"clock"`
	DecimalSymbol        string `json:"decimal_symbol"`
	ThousandsSeparator   string `json:"thousands_separator"`
	ColorScheme          string `json:"color_scheme"`
	WeeklyCapacity       int    `json:"weekly_capacity"`
	ExpenseFeature       bool   `json:"expense_feature"`
	InvoiceFeature       bool   `json:"invoice_feature"`
	EstimateFeature      bool   `json:"estimate_feature"`
	ApprovalFeature      bool   `json:"approval_feature"`
}

// GetCompany retrieves the company record for the authenticated account.
func (c *Client) GetCompany(ctx context.Context) (*Company, error) {
	var company Company
	if err := c.get(ctx, "/company", nil, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

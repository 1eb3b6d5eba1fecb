package model

// Company is a business identified by a slug of its name
type Company struct {
	Code        string  `gorm:"primaryKey;type:text"`
	Name        *string `gorm:"type:text;not null"`
	Description *string `gorm:"type:text"`
}

// TableName overrides the table name used by Company
func (Company) TableName() string {
	return "companies"
}

// CompanySummary is one entry of the company listing
type CompanySummary struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CompanyView is the public shape of a single company row
type CompanyView struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CompanyDetail is a company with its industry and invoice ids
type CompanyDetail struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Industry    *string `json:"industry"`
	Invoices    []uint  `json:"invoices"`
}

// ToCompanySummaries converts rows into the {code, name} listing
func ToCompanySummaries(companies []Company) []CompanySummary {
	out := make([]CompanySummary, 0, len(companies))
	for _, c := range companies {
		out = append(out, CompanySummary{Code: c.Code, Name: deref(c.Name)})
	}
	return out
}

// ToCompanyView converts a model to its public shape
func ToCompanyView(c Company) CompanyView {
	return CompanyView{Code: c.Code, Name: deref(c.Name), Description: c.Description}
}

// ToCompanyDetail joins a company with its optional industry name and invoice ids
func ToCompanyDetail(c Company, industry *string, invoiceIDs []uint) CompanyDetail {
	if invoiceIDs == nil {
		invoiceIDs = []uint{}
	}
	return CompanyDetail{
		Code:        c.Code,
		Name:        deref(c.Name),
		Description: c.Description,
		Industry:    industry,
		Invoices:    invoiceIDs,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package model

// Industry is a sector companies can be associated with
type Industry struct {
	Code     string  `gorm:"primaryKey;type:text"`
	Industry *string `gorm:"type:text;not null"`
}

// TableName overrides the table name used by Industry
func (Industry) TableName() string {
	return "industries"
}

// CompanyIndustry associates a company with an industry.
// Nothing prevents the same pair from being stored twice.
type CompanyIndustry struct {
	ID           uint      `gorm:"primaryKey"`
	CompCode     *string   `gorm:"type:text;not null;index"`
	IndustryCode *string   `gorm:"type:text;not null;index"`
	Company      *Company  `gorm:"foreignKey:CompCode;references:Code"`
	Industry     *Industry `gorm:"foreignKey:IndustryCode;references:Code"`
}

// TableName overrides the table name used by CompanyIndustry
func (CompanyIndustry) TableName() string {
	return "companies_industries"
}

// IndustryView is the public shape of a single industry row
type IndustryView struct {
	Code     string `json:"code"`
	Industry string `json:"industry"`
}

// IndustryCompanyRow is one (industry, company) pair of the flat industry listing.
// CompCode is null for an industry without companies.
type IndustryCompanyRow struct {
	Code     string  `json:"code"`
	Industry string  `json:"industry"`
	CompCode *string `json:"comp_code"`
}

// CompanyIndustryView is the association row returned after linking a company to an industry
type CompanyIndustryView struct {
	ID           uint   `json:"id"`
	CompCode     string `json:"comp_code"`
	IndustryCode string `json:"industry_code"`
}

// ToIndustryView converts a model to its public shape
func ToIndustryView(i Industry) IndustryView {
	return IndustryView{Code: i.Code, Industry: deref(i.Industry)}
}

// ToCompanyIndustryView converts an association row to its public shape
func ToCompanyIndustryView(ci CompanyIndustry) CompanyIndustryView {
	return CompanyIndustryView{ID: ci.ID, CompCode: deref(ci.CompCode), IndustryCode: deref(ci.IndustryCode)}
}

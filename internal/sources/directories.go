package sources

import (
	"github.com/jonesrussell/north-cloud/prospector/internal/fetcher"
	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
	"github.com/jonesrussell/north-cloud/prospector/internal/search"
)

// Directory source names.
const (
	ThomasNetName   = "thomasnet"
	KompassName     = "kompass"
	IndustryNetName = "industrynet"
)

// ThomasNet is the North American industrial supplier directory.
var ThomasNet = DirectoryConfig{
	Name:       ThomasNetName,
	Host:       "thomasnet.com",
	SiteFilter: "site:thomasnet.com/profile",
	Profile: DirectoryProfile{
		Description: ".supplier-profile__description, .company-description",
		Location:    ".supplier-profile__location, .co-location",
		Website:     `a.supplier-profile__website, a[href*="website"]`,
		Phone:       ".supplier-profile__phone, .co-phone",
	},
}

// Kompass is the international B2B company directory, US edition.
var Kompass = DirectoryConfig{
	Name:       KompassName,
	Host:       "kompass.com",
	SiteFilter: "site:us.kompass.com",
	Profile: DirectoryProfile{
		Description: ".company-description, .presentation",
		Location:    ".address, .company-address",
		Phone:       ".phone, .tel",
	},
}

// IndustryNet is the US industrial company directory.
var IndustryNet = DirectoryConfig{
	Name:       IndustryNetName,
	Host:       "industrynet.com",
	SiteFilter: "site:industrynet.com",
	Profile: DirectoryProfile{
		Description: ".company-description, .about-company",
		Location:    ".company-address, .address",
		Phone:       ".phone, .company-phone",
		Employees:   ".employees, .company-size",
	},
}

// NewThomasNet creates the ThomasNet directory source.
func NewThomasNet(s search.Searcher, f fetcher.Fetcher, log logger.Logger) *Directory {
	return NewDirectory(ThomasNet, s, f, log)
}

// NewKompass creates the Kompass directory source.
func NewKompass(s search.Searcher, f fetcher.Fetcher, log logger.Logger) *Directory {
	return NewDirectory(Kompass, s, f, log)
}

// NewIndustryNet creates the IndustryNet directory source.
func NewIndustryNet(s search.Searcher, f fetcher.Fetcher, log logger.Logger) *Directory {
	return NewDirectory(IndustryNet, s, f, log)
}

// NewDefaultRegistry registers the general search source followed by every directory.
func NewDefaultRegistry(s search.Searcher, f fetcher.Fetcher, log logger.Logger) *Registry {
	return NewRegistry(
		NewGoogle(s, f, log),
		NewThomasNet(s, f, log),
		NewKompass(s, f, log),
		NewIndustryNet(s, f, log),
	)
}

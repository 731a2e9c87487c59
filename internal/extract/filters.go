package extract

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

const (
	minPublicIndicators = 2
	maxListPathDepth    = 3
)

// publicCompanyDomains are large public or enterprise companies outside the target market.
var publicCompanyDomains = toSet(
	// Aerospace & Defense
	"boeing.com", "lockheedmartin.com", "rtx.com", "raytheon.com",
	"northropgrumman.com", "generaldynamics.com", "l3harris.com",
	"bae.com", "baesystems.com", "textron.com", "leidos.com",
	"geaerospace.com", "ge.com", "rolls-royce.com",
	"honeywell.com", "aerospace.honeywell.com", "safran-group.com",
	"airbus.com", "thalesgroup.com", "leonardocompany.com",
	"gulfstream.com", "bombardier.com", "embraer.com",
	"howmet.com", "transdigm.com", "hexcel.com", "spirit.com",
	// Industrial conglomerates
	"3m.com", "siemens.com", "caterpillar.com", "deere.com",
	"cummins.com", "parker.com", "emerson.com", "rockwellautomation.com",
	"danaher.com", "dover.com", "illinois-tool-works.com", "itw.com",
	"eaton.com", "roper.com", "fortive.com", "ametek.com",
	"abb.com", "schneider-electric.com",
	// Chemicals
	"basf.com", "dow.com", "dupont.com", "ppg.com",
	"sherwin-williams.com", "lyondellbasell.com", "eastman.com",
	"celanese.com", "huntsman.com", "ashland.com", "rpm.com",
	// Medical / scientific
	"medtronic.com", "abbott.com", "bd.com", "stryker.com",
	"bostonscientific.com", "edwardslifesciences.com",
	"thermofisher.com", "agilent.com",
	"waters.com", "bio-rad.com", "perkinelmer.com",
	"johnsonandjohnson.com", "jnj.com", "baxter.com",
	"gehealthcare.com", "philips.com",
	// Building materials
	"holcim.com", "cemex.com", "vulcanmat.com", "martinmarietta.com",
	"jameshardie.com", "owenscorning.com", "masco.com", "boise-cascade.com",
	// Electrical / electronics
	"te.com", "amphenol.com", "molex.com", "vishay.com",
	"keysight.com", "hubbell.com", "nvent.com", "regal-rexnord.com",
	"intel.com", "ti.com", "analog.com", "microchip.com",
	"samsung.com", "sony.com", "panasonic.com", "toshiba.com",
	// Commodity trading
	"glencore.com", "cargill.com", "adm.com", "bunge.com",
	"trafigura.com", "vitol.com", "mercuria.com",
	// Mega-caps
	"apple.com", "microsoft.com", "google.com", "amazon.com",
	"meta.com", "tesla.com", "nvidia.com", "ibm.com", "oracle.com",
	"cisco.com", "dell.com", "hp.com", "hpe.com",
)

var publicIndicators = []string{
	"nyse:", "nasdaq:", "stock ticker", "investor relations",
	"annual report", "sec filing", "10-k", "10-q",
	"fortune 500", "fortune 100", "s&p 500",
}

// nonCompanyDomains host social, media, reference, marketplace and directory pages.
var nonCompanyDomains = toSet(
	"wikipedia.org", "youtube.com", "facebook.com", "twitter.com", "x.com",
	"linkedin.com", "instagram.com", "reddit.com", "yelp.com", "pinterest.com",
	"indeed.com", "glassdoor.com", "bbb.org", "crunchbase.com", "zoominfo.com",
	"thomasnet.com", "kompass.com", "industrynet.com", "manta.com", "yellowpages.com",
	"bloomberg.com", "reuters.com", "forbes.com", "wsj.com", "nytimes.com",
	"amazon.com", "ebay.com", "alibaba.com", "google.com", "yahoo.com", "bing.com",
	"quora.com", "medium.com", "mapquest.com", "dnb.com",
)

var nonCompanySuffixes = []string{".gov", ".edu", ".mil"}

var listPathSegments = toSet("category", "categories", "list", "lists", "tag", "tags", "directory", "search")

var listPathPrefixes = []string{"top-", "best-", "search"}

func toSet(items ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		out[item] = struct{}{}
	}
	return out
}

// RegistrableDomain returns the eTLD+1 of a host ("shop.acme.co.uk" -> "acme.co.uk").
func RegistrableDomain(host string) string {
	host = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
	if etld1, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return etld1
	}
	return host
}

// IsPublicCompanyDomain reports whether host belongs to a known public or enterprise company.
func IsPublicCompanyDomain(host string) bool {
	host = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
	if _, ok := publicCompanyDomains[host]; ok {
		return true
	}
	_, ok := publicCompanyDomains[RegistrableDomain(host)]
	return ok
}

// HasPublicCompanyIndicators reports whether a page mentions at least two
// stock-market or enterprise signals.
func HasPublicCompanyIndicators(content string) bool {
	lower := strings.ToLower(content)
	hits := 0
	for _, indicator := range publicIndicators {
		if strings.Contains(lower, indicator) {
			hits++
			if hits >= minPublicIndicators {
				return true
			}
		}
	}
	return false
}

// IsNonCompanyDomain reports whether host is a social, media, reference,
// marketplace, directory or government site. Subdomains are included.
func IsNonCompanyDomain(host string) bool {
	host = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
	if host == "" || !strings.Contains(host, ".") {
		return true
	}
	for _, suffix := range nonCompanySuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	if _, ok := nonCompanyDomains[RegistrableDomain(host)]; ok {
		return true
	}
	for d := range nonCompanyDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// IsListLikePath reports whether a URL looks like a listing or category page
// rather than a company home page.
func IsListLikePath(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	var segments []string
	for _, seg := range strings.Split(strings.ToLower(u.Path), "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) > maxListPathDepth {
		return true
	}
	for _, seg := range segments {
		if _, ok := listPathSegments[seg]; ok {
			return true
		}
		for _, prefix := range listPathPrefixes {
			if strings.HasPrefix(seg, prefix) {
				return true
			}
		}
	}
	return false
}

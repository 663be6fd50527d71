package extractor

import (
	"github.com/rsilvagit/jobfit/internal/filter"
	"github.com/rsilvagit/jobfit/internal/model"
)

// Selector tables for LinkedIn job pages. Class names shift between page
// versions, A/B tests and locales, so each field lists every known variant,
// most specific first.
var (
	titleSelectors = []string{
		".t-24.t-bold.inline a",
		".job-details-jobs-unified-top-card__job-title",
		"h1.t-24.t-bold.inline",
		".jobs-unified-top-card__job-title",
		".jobs-unified-top-card__title",
		`h1[class*="job-title"]`,
	}

	companySelectors = []string{
		".job-details-jobs-unified-top-card__company-name a",
		".artdeco-entity-lockup__title a",
		".jobs-unified-top-card__company-name",
		".jobs-unified-top-card__subtitle-primary-grouping",
		".jobs-unified-top-card__subtitle-primary-grouping a",
		".jobs-unified-top-card__company-name a",
	}

	locationSelectors = []string{
		".tvm__text.tvm__text--low-emphasis",
		".jobs-unified-top-card__bullet",
		".jobs-unified-top-card__subtitle-primary-grouping",
		".jobs-unified-top-card__subtitle-primary-grouping span",
		".jobs-unified-top-card__subtitle-primary-grouping .jobs-unified-top-card__bullet",
	}

	descriptionSelectors = []string{
		".jobs-box__html-content",
		".jobs-description-content__text",
		".jobs-description__content",
		".jobs-box--full-width",
		".jobs-description--reformatted",
		".jobs-description__container",
		".jobs-description-content",
		".jobs-box__html-content.avQjLrmhdKIBkffLUgEiVobqKdExpZiJsAoIJ",
		".jobs-description-content__text--stretch",
		"#job-details",
		".jobs-box--with-cta-large",
		".jobs-description__content .jobs-box__html-content",
		"[data-job-description]",
		".job-description",
		".job-description-content",
		".jobs-description",
		".jobs-box__html-content p",
		".jobs-description__content p",
	}

	// contentSelector is scanned element by element once the primary
	// description chain comes up empty.
	contentSelector = ".jobs-box__html-content, .jobs-description-content__text, .jobs-description__content, .job-description, .jobs-description"

	blockSelector = "p, div, section"

	insightButtonSelector = ".job-details-fit-level-preferences button, .jobs-unified-top-card__job-insight button"
	companyInfoSelector   = ".jobs-company__box .t-14, .jobs-unified-top-card__subtitle-primary-grouping .t-14"
	postedDateSelector    = ".jobs-unified-top-card__subtitle-secondary-grouping .t-14"
	senioritySelector     = ".jobs-unified-top-card__job-insight .jobs-unified-top-card__job-insight"
)

const (
	// descriptionGate rejects short labels and breadcrumbs that share a
	// description class name.
	descriptionGate = 200
	// blockGate applies to the last-resort scan over arbitrary blocks.
	blockGate = 500
)

var descriptionKeywords = []string{"responsibilities", "requirements", "qualifications", "experience"}

var (
	insightCategories = []filter.Category{
		{Name: model.KeyWorkMode, Keywords: []string{"Remote", "On-site", "Hybrid"}},
		{Name: model.KeyJobType, Keywords: []string{"Internship", "Full-time", "Part-time", "Contract"}},
	}
	companyCategories = []filter.Category{
		{Name: model.KeyCompanyDetails, Keywords: []string{"employees", "followers", "industry"}},
	}
)

var (
	titleLocators       = queries(titleSelectors...)
	companyLocators     = queries(companySelectors...)
	locationLocators    = queries(locationSelectors...)
	descriptionLocators = queries(descriptionSelectors...)
	contentLocator      = QueryAll(contentSelector)
	blockLocator        = QueryAll(blockSelector)
)

func titleChain() Chain {
	return Chain{Field: "title", Locators: titleLocators}
}

func companyChain() Chain {
	return Chain{Field: "company", Locators: companyLocators}
}

// locationChain depends on the resolved company: selectors shared with the
// company block must not leak the company name into the location.
func locationChain(company string) Chain {
	return Chain{
		Field:    "location",
		Locators: locationLocators,
		Accept:   filter.All(filter.Excludes(company), filter.ShorterThan(model.MaxLocationLength)),
	}
}

// descriptionChains are tried in order: the known description containers,
// then every content-like element, then any long block mentioning the usual
// posting vocabulary.
func descriptionChains() []Chain {
	return []Chain{
		{
			Field:    "description",
			Locators: descriptionLocators,
			Accept:   filter.LongerThan(descriptionGate),
		},
		{
			Field:    "description",
			Locators: []Locator{contentLocator},
			Accept:   filter.LongerThan(descriptionGate),
		},
		{
			Field:    "description",
			Locators: []Locator{blockLocator},
			Accept:   filter.All(filter.LongerThan(blockGate), filter.ContainsAny(descriptionKeywords...)),
		},
	}
}

package schema

import (
	"fmt"
	"regexp"

	"github.com/sitecheck/sitecheck/internal/domain"
)

// Record is a decoded structured-data node classified by its declared type.
// The set of variants is closed: every variant lives in this file and
// implements its own rule set.
type Record interface {
	TypeName() string
	check(c *checker)
}

type (
	LegalService   struct{ node object }
	FAQPage        struct{ node object }
	BreadcrumbList struct{ node object }
	Person         struct{ node object }
	WebSite        struct{ node object }
	BlogPosting    struct{ node object }
	Unknown        struct{ node object }
)

var variants = map[string]func(object) Record{
	"LegalService":   func(o object) Record { return LegalService{o} },
	"FAQPage":        func(o object) Record { return FAQPage{o} },
	"BreadcrumbList": func(o object) Record { return BreadcrumbList{o} },
	"Person":         func(o object) Record { return Person{o} },
	"WebSite":        func(o object) Record { return WebSite{o} },
	"BlogPosting":    func(o object) Record { return BlogPosting{o} },
}

// Classify returns the variant for the first recognised @type of node.
func Classify(node map[string]any) Record {
	o := object(node)
	for _, t := range o.types() {
		if ctor, ok := variants[t]; ok {
			return ctor(o)
		}
	}
	return Unknown{o}
}

func (LegalService) TypeName() string   { return "LegalService" }
func (FAQPage) TypeName() string        { return "FAQPage" }
func (BreadcrumbList) TypeName() string { return "BreadcrumbList" }
func (Person) TypeName() string         { return "Person" }
func (WebSite) TypeName() string        { return "WebSite" }
func (BlogPosting) TypeName() string    { return "BlogPosting" }

func (u Unknown) TypeName() string {
	if t := u.node.types(); len(t) > 0 {
		return t[0]
	}
	return "(none)"
}

var priceRangeKey = regexp.MustCompile(`"priceRange"\s*:`)

func (r LegalService) check(c *checker) {
	for _, field := range []string{"address", "telephone", "image"} {
		if !r.node.has(field) {
			c.add(domain.KindSchemaRequiredField,
				fmt.Sprintf("Missing required field %q (Google Rich Results requirement)", field))
		}
	}

	// A decoded object keeps only the last duplicate key, so this runs on
	// the block text.
	if n := len(priceRangeKey.FindAllStringIndex(c.raw, -1)); n > 1 {
		c.add(domain.KindSchemaDuplicateProperty,
			fmt.Sprintf(`Duplicate property "priceRange" (found %d times)`, n))
	}

	if rating, ok := r.node.obj("aggregateRating"); ok && equalsNumber(rating["reviewCount"], 0) {
		c.add(domain.KindSchemaInvalidValue,
			"aggregateRating has reviewCount: 0 (must be positive integer or remove aggregateRating)")
	}

	if r.node.has("address") {
		if addr, ok := r.node.obj("address"); !ok || !addr.is("PostalAddress") {
			c.add(domain.KindSchemaRecommendation, `address should have @type: "PostalAddress"`)
		}
	}

	if provider, ok := r.node.obj("provider"); ok && provider.has("@type") && provider.has("@id") {
		c.add(domain.KindSchemaRecommendation,
			`provider should only have @id, not @type (removes "Unnamed item" error)`)
	}

	if r.node.has("areaServed") {
		for i, v := range asObjects(r.node["areaServed"]) {
			area, ok := v.(map[string]any)
			if ok && object(area).has("name") && !object(area).has("@type") {
				c.add(domain.KindSchemaRecommendation,
					fmt.Sprintf(`areaServed[%d] missing @type (should be "City" or "AdministrativeArea")`, i))
			}
		}
	}
}

func (r FAQPage) check(c *checker) {
	entries, ok := r.node.list("mainEntity")
	if !ok {
		c.add(domain.KindSchemaRequiredField, `FAQPage must have "mainEntity" array`)
		return
	}

	if len(entries) < c.opts.MinFAQQuestions {
		c.add(domain.KindSchemaRecommendation,
			fmt.Sprintf("FAQPage mainEntity has only %d questions (Google recommends 5-10+)", len(entries)))
	}

	for i, v := range entries {
		q, _ := v.(map[string]any)
		question := object(q)
		n := i + 1
		if !question.has("name") {
			c.add(domain.KindSchemaRequiredField, fmt.Sprintf(`Question %d missing "name" field`, n))
		}
		if !question.has("acceptedAnswer") {
			c.add(domain.KindSchemaRequiredField, fmt.Sprintf(`Question %d missing "acceptedAnswer"`, n))
			continue
		}
		answer, _ := question.obj("acceptedAnswer")
		if !answer.has("text") {
			c.add(domain.KindSchemaRequiredField, fmt.Sprintf(`Question %d acceptedAnswer missing "text"`, n))
		}
	}
}

func (r BreadcrumbList) check(c *checker) {
	items, ok := r.node.list("itemListElement")
	if !ok {
		c.add(domain.KindSchemaRequiredField, `BreadcrumbList must have "itemListElement" array`)
		return
	}

	for i, v := range items {
		m, _ := v.(map[string]any)
		item := object(m)
		n := i + 1
		if !equalsNumber(item["position"], float64(n)) {
			c.add(domain.KindSchemaInvalidValue,
				fmt.Sprintf("Breadcrumb item %d position mismatch: found %s, expected %d", n, display(item["position"]), n))
		}
		if !item.has("name") {
			c.add(domain.KindSchemaRequiredField, fmt.Sprintf(`Breadcrumb item %d missing "name"`, n))
		}
		if !item.has("item") {
			c.add(domain.KindSchemaRequiredField, fmt.Sprintf(`Breadcrumb item %d missing "item" (URL)`, n))
		}
	}
}

func (r Person) check(c *checker) {
	if !r.node.has("name") {
		c.add(domain.KindSchemaRequiredField, `Person schema missing "name" field`)
	}
	if !r.node.has("jobTitle") {
		c.add(domain.KindSchemaRecommendation, `Person schema missing "jobTitle" (recommended)`)
	}
}

func (r WebSite) check(c *checker) {
	if !r.node.has("potentialAction") {
		return
	}
	for _, v := range asObjects(r.node["potentialAction"]) {
		if action, ok := v.(map[string]any); ok && object(action).is("SearchAction") {
			c.add(domain.KindSchemaRecommendation,
				"SearchAction present but site has no search functionality (Google will crawl invalid URLs)")
			return
		}
	}
}

func (BlogPosting) check(*checker) {}

func (u Unknown) check(c *checker) {
	c.add(domain.KindUnknownSchemaType, "Unknown schema type: "+u.TypeName())
}

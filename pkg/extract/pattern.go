package extract

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/OFFIS-RIT/provgraph/pkg/common"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const capitalizedPhrase = `[A-Z][A-Za-z0-9&]*(?:\s+[A-Z][A-Za-z0-9&]*)`

var (
	rePartner    = regexp.MustCompile(`(?i)partnered with ([A-Z][A-Za-z0-9\s&]+)`)
	rePlatform   = regexp.MustCompile(`(?i)(?:cloud\s+)?platform\s+(?:called|named)\s+([A-Z][A-Za-z0-9]+)`)
	reService    = regexp.MustCompile(`(?i)launched (?:its |the )?([A-Z][^.,;]+?service)`)
	reCapability = regexp.MustCompile(`(?i)capabilities in ([A-Za-z0-9\s]+)`)
	reCompany    = regexp.MustCompile(`\b(` + capitalizedPhrase + `{0,5})\b`)

	reLaunched   = regexp.MustCompile(`(?i)(` + capitalizedPhrase + `{0,4}) launched (?:its |the )?([A-Z][^.,;]+?service)`)
	reAcquired   = regexp.MustCompile(`(?i)(` + capitalizedPhrase + `{0,4})\b acquired (` + capitalizedPhrase + `{0,4})\b`)
	reIntegrated = regexp.MustCompile(`(?i)integrated with the ([^ .,;]+)`)

	reFounded         = regexp.MustCompile(`(?i)(?:founded|incorporated) in (\d{4})`)
	reLaunchEvent     = regexp.MustCompile(`(?i)In (\d{4}), ([A-Z][A-Za-z0-9\s&]+) launched`)
	reAcquisitionYear = regexp.MustCompile(`(?i)acquired (` + capitalizedPhrase + `{0,4})\b in (\d{4})`)
)

// PatternExtractor is a rule-based extractor for company prose. It is
// deliberately lossy: it proposes candidates and leaves type conflicts,
// unknown types and unresolved names to the graph normalizer.
//
// Specific entity kinds (Partner, Platform, Service, Capability) are matched
// before generic companies, and a name claimed by a specific kind is never
// proposed again as a Company within the same chunk.
type PatternExtractor struct{}

// NewPatternExtractor returns a PatternExtractor.
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

// Extract implements Extractor. It never fails.
func (p *PatternExtractor) Extract(_ context.Context, chunk common.Chunk) (common.Extraction, error) {
	text := chunk.Text
	c := &candidates{seen: make(map[string]struct{})}

	for _, m := range rePartner.FindAllStringSubmatch(text, -1) {
		c.addEntity(cleanEntityName(m[1]), "Partner")
	}
	for _, m := range rePlatform.FindAllStringSubmatch(text, -1) {
		c.addEntity(strings.TrimSpace(m[1]), "Platform")
	}
	for _, m := range reService.FindAllStringSubmatch(text, -1) {
		c.addEntity(strings.TrimSpace(m[1]), "Service")
	}
	// cases.Caser is stateful, so every call gets its own.
	title := cases.Title(language.English)
	for _, m := range reCapability.FindAllStringSubmatch(text, -1) {
		c.addEntity(title.String(strings.TrimSpace(m[1])), "Capability")
	}
	for _, m := range reCompany.FindAllStringSubmatch(text, -1) {
		name := cleanCompanyName(cleanEntityName(m[1]))
		if isLikelyCompany(name) {
			c.addEntity(name, "Company")
		}
	}

	companies := c.namesOf("Company")
	platforms := c.namesOf("Platform")
	services := c.namesOf("Service")

	if len(companies) > 0 {
		for _, name := range platforms {
			c.addRelation(companies[0], name, "operates")
		}
		for _, name := range services {
			c.addRelation(companies[0], name, "offers")
		}
	}
	for _, m := range reLaunched.FindAllStringSubmatch(text, -1) {
		c.addRelation(cleanCompanyName(m[1]), strings.TrimSpace(m[2]), "launched")
	}
	for _, m := range reAcquired.FindAllStringSubmatch(text, -1) {
		from := cleanCompanyName(cleanEntityName(m[1]))
		to := cleanCompanyName(cleanEntityName(m[2]))
		if from != "" && to != "" {
			c.addRelation(from, to, "acquired")
		}
	}
	if len(companies) > 0 {
		for _, m := range rePartner.FindAllStringSubmatch(text, -1) {
			if partner := cleanEntityName(m[1]); partner != "" {
				c.addRelation(companies[0], partner, "partnered_with")
			}
		}
	}
	if len(services) > 0 {
		for _, m := range reIntegrated.FindAllStringSubmatch(text, -1) {
			c.addRelation(services[0], strings.TrimSpace(m[1]), "integrated_with")
		}
	}

	if m := reFounded.FindStringSubmatch(text); m != nil && len(companies) > 0 {
		year, _ := strconv.Atoi(m[1])
		c.out.Events = append(c.out.Events, common.CandidateEvent{
			Name:    "Incorporation of " + companies[0],
			Type:    "Incorporation",
			Year:    &year,
			Company: companies[0],
			Tags:    []string{"Milestone"},
		})
	}
	if m := reLaunchEvent.FindStringSubmatch(text); m != nil && len(services) > 0 {
		year, _ := strconv.Atoi(m[1])
		c.out.Events = append(c.out.Events, common.CandidateEvent{
			Name:      fmt.Sprintf("Launch in %d", year),
			Type:      "Launch",
			Year:      &year,
			Company:   cleanCompanyName(m[2]),
			RelatedTo: services[0],
			Tags:      []string{"Launch"},
		})
	}
	if m := reAcquisitionYear.FindStringSubmatch(text); m != nil && len(companies) > 0 {
		acquired := cleanCompanyName(cleanEntityName(m[1]))
		year, _ := strconv.Atoi(m[2])
		if acquired != "" {
			c.out.Events = append(c.out.Events, common.CandidateEvent{
				Name:      fmt.Sprintf("Acquisition of %s in %d", acquired, year),
				Type:      "Acquisition",
				Year:      &year,
				Company:   companies[0],
				RelatedTo: acquired,
				Tags:      []string{"Acquisition"},
			})
		}
	}

	return c.out, nil
}

type candidates struct {
	out  common.Extraction
	seen map[string]struct{}
}

func (c *candidates) addEntity(name, typ string) {
	if name == "" {
		return
	}
	if _, ok := c.seen[name]; ok {
		return
	}
	c.seen[name] = struct{}{}
	c.out.Entities = append(c.out.Entities, common.CandidateEntity{
		Name:       name,
		Type:       typ,
		Attributes: map[string]any{},
	})
}

func (c *candidates) addRelation(from, to, relation string) {
	c.out.Relations = append(c.out.Relations, common.CandidateRelation{
		From:     from,
		To:       to,
		Relation: relation,
	})
}

func (c *candidates) namesOf(typ string) []string {
	var names []string
	for _, e := range c.out.Entities {
		if e.Type == typ {
			names = append(names, e.Name)
		}
	}
	return names
}

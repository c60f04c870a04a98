package extract

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/OFFIS-RIT/provgraph/internal/util"
	"github.com/OFFIS-RIT/provgraph/pkg/ai"
	"github.com/OFFIS-RIT/provgraph/pkg/common"
	"github.com/OFFIS-RIT/provgraph/pkg/ontology"
)

type modelEntity struct {
	Name string `json:"name" jsonschema_description:"Name of the entity exactly as written in the passage"`
	Type string `json:"type" jsonschema_description:"One of the allowed entity types"`
}

type modelRelation struct {
	From     string `json:"from" jsonschema_description:"Name of the source entity, as listed in entities"`
	To       string `json:"to" jsonschema_description:"Name of the target entity, as listed in entities"`
	Relation string `json:"relation" jsonschema_description:"One of the allowed relation types"`
}

type modelEvent struct {
	Name      string   `json:"name" jsonschema_description:"Short descriptive event name"`
	Type      string   `json:"type" jsonschema_description:"One of the allowed event types"`
	Year      int      `json:"year" jsonschema_description:"Four digit year of the event, 0 if the passage does not state it"`
	Company   string   `json:"company" jsonschema_description:"Name of the company the event belongs to, empty if unknown"`
	RelatedTo string   `json:"related_to" jsonschema_description:"Name of the entity launched or acquired, empty if none"`
	Tags      []string `json:"tags" jsonschema_description:"Short keywords describing the event"`
}

type modelResponse struct {
	Entities  []modelEntity   `json:"entities" jsonschema_description:"Entities named in the passage"`
	Relations []modelRelation `json:"relations" jsonschema_description:"Relations between the listed entities"`
	Events    []modelEvent    `json:"events" jsonschema_description:"Events described in the passage"`
}

// ModelExtractor asks a language model for candidates. The model sees the
// ontology's vocabulary but its answer is not trusted: the graph normalizer
// filters whatever comes back.
//
// A ModelExtractor should be created using NewModelExtractor.
type ModelExtractor struct {
	client     ai.GraphAIClient
	prompt     string
	maxRetries int
	opts       []ai.GenerateOption
}

// NewModelExtractorParams defines the configuration parameters for creating
// a new ModelExtractor.
//
// Ontology defaults to ontology.Default(). MaxRetries bounds the attempts
// per chunk; values below one mean a single attempt. Model overrides the
// client's default extraction model when set.
type NewModelExtractorParams struct {
	Client     ai.GraphAIClient
	Ontology   *ontology.Ontology
	MaxRetries int
	Model      string
}

// NewModelExtractor creates and returns a new ModelExtractor.
func NewModelExtractor(params NewModelExtractorParams) (*ModelExtractor, error) {
	if params.Client == nil {
		return nil, fmt.Errorf("model extractor needs an AI client")
	}
	o := params.Ontology
	if o == nil {
		o = ontology.Default()
	}

	var opts []ai.GenerateOption
	if params.Model != "" {
		opts = append(opts, ai.WithModel(params.Model))
	}

	return &ModelExtractor{
		client:     params.Client,
		prompt:     extractPrompt(o),
		maxRetries: params.MaxRetries,
		opts:       opts,
	}, nil
}

// extractPrompt lists only the types a model may propose; Event and Source
// nodes and their relations are created by the normalizer itself.
func extractPrompt(o *ontology.Ontology) string {
	entities := slices.DeleteFunc(o.EntityTypes(), func(t string) bool {
		return t == ontology.TypeEvent || t == ontology.TypeSource
	})
	relations := slices.DeleteFunc(o.RelationTypes(), func(r string) bool {
		return r == ontology.RelationHasEvent || r == ontology.RelationDescribedIn
	})
	return fmt.Sprintf(
		ai.ExtractPrompt,
		strings.Join(entities, ","),
		strings.Join(relations, ","),
		strings.Join(o.EventTypes(), ","),
	)
}

// Extract implements Extractor.
func (m *ModelExtractor) Extract(ctx context.Context, chunk common.Chunk) (common.Extraction, error) {
	if strings.TrimSpace(chunk.Text) == "" {
		return common.Extraction{}, nil
	}

	var res modelResponse
	opts := append([]ai.GenerateOption{ai.WithSystemPrompts(m.prompt)}, m.opts...)
	err := util.RetryErrWithContext(ctx, m.maxRetries, func(ctx context.Context) error {
		res = modelResponse{}
		return m.client.GenerateCompletionWithFormat(
			ctx,
			"extract_graph",
			"Extract entities, relations and events from a passage.",
			chunk.Text,
			&res,
			opts...,
		)
	})
	if err != nil {
		return common.Extraction{}, err
	}

	return res.toExtraction(), nil
}

func (r modelResponse) toExtraction() common.Extraction {
	out := common.Extraction{
		Entities:  make([]common.CandidateEntity, 0, len(r.Entities)),
		Relations: make([]common.CandidateRelation, 0, len(r.Relations)),
		Events:    make([]common.CandidateEvent, 0, len(r.Events)),
	}
	for _, e := range r.Entities {
		out.Entities = append(out.Entities, common.CandidateEntity{
			Name:       strings.TrimSpace(e.Name),
			Type:       strings.TrimSpace(e.Type),
			Attributes: map[string]any{},
		})
	}
	for _, rel := range r.Relations {
		out.Relations = append(out.Relations, common.CandidateRelation{
			From:     strings.TrimSpace(rel.From),
			To:       strings.TrimSpace(rel.To),
			Relation: strings.TrimSpace(rel.Relation),
		})
	}
	for _, ev := range r.Events {
		event := common.CandidateEvent{
			Name:      strings.TrimSpace(ev.Name),
			Type:      strings.TrimSpace(ev.Type),
			Company:   strings.TrimSpace(ev.Company),
			RelatedTo: strings.TrimSpace(ev.RelatedTo),
			Tags:      ev.Tags,
		}
		if ev.Year != 0 {
			year := ev.Year
			event.Year = &year
		}
		if event.Tags == nil {
			event.Tags = []string{}
		}
		out.Events = append(out.Events, event)
	}
	return out
}

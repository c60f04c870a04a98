package ai

// ExtractPrompt is the system prompt for candidate extraction. It takes the
// allowed entity types, relation types and event types, each as a comma
// separated list.
const ExtractPrompt = `
# Task Context
You extract a small knowledge graph from a passage of a company document such as an annual report or a prospectus.

# Allowed Vocabulary
Entity types: %s
Relation types: %s
Event types: %s

# Detailed Task Description & Rules
- List every entity the passage names, using the exact surface form from the text as "name".
- Assign each entity exactly one of the allowed entity types. Skip entities that fit none of them.
- Classify specific things first: a named platform is a Platform, a named service is a Service, a company named as a partner is a Partner. Use Company only for organisations that are none of these.
- List relations between the listed entities. "from" and "to" must repeat an entity name exactly. Use only the allowed relation types.
- List events (launches, acquisitions, milestones) with their "year" when the passage states one, the owning company in "company", and the affected entity in "related_to".
- Give each event a short descriptive name such as "Launch in 2020" or "Acquisition of QuantumAI".
- Never invent facts that the passage does not state. Leave optional fields empty when unknown.

# Output Format
Answer with a single JSON object matching the provided schema and nothing else.
`

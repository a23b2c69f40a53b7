package mcpserver

// FieldContract describes how document fields report absence. LLM consumers
// should read it before interpreting read_document output.
const FieldContract = `# Document Field Contract

Every document returned by read_document follows these rules.

## Identifier

` + "`" + `guid` + "`" + ` is always present. A source document without a numeric doc-id is
never indexed.

## Scalar fields

Text, integer, date and URL fields are either a value or ` + "`" + `null` + "`" + `.

- ` + "`" + `null` + "`" + ` means the source had no value. An empty string in the source is
  also reported as ` + "`" + `null` + "`" + `; the two cannot be told apart.
- No default is ever substituted. ` + "`" + `page: null` + "`" + ` does not mean page 0, and
  ` + "`" + `page: 0` + "`" + ` is a real value.
- Integers, dates and URLs that failed to parse are ` + "`" + `null` + "`" + `.
- Dates are RFC 3339 timestamps.
- ` + "`" + `online_lead_paragraph` + "`" + ` is whitespace-normalized: every Unicode space
  separator (for example the non-breaking space) becomes an ordinary space and
  the value is trimmed. A value left empty by this is ` + "`" + `null` + "`" + `.

## List fields

List fields are never ` + "`" + `null` + "`" + `. A missing list is ` + "`" + `[]` + "`" + `.
Elements keep their source order and are not deduplicated.

## Derived list fields

| field | source field | delimiter |
|---|---|---|
| ` + "`" + `body_lines` + "`" + ` | ` + "`" + `body` + "`" + ` | newline |
| ` + "`" + `lead_paragraph_lines` + "`" + ` | ` + "`" + `lead_paragraph` + "`" + ` | newline |
| ` + "`" + `online_lead_paragraph_lines` + "`" + ` | ` + "`" + `online_lead_paragraph` + "`" + ` | newline |
| ` + "`" + `online_sections` + "`" + ` | ` + "`" + `online_section` + "`" + ` | semicolon |

The source value is whitespace-normalized as above before it is split.
Section names are trimmed individually. Trailing empty elements are dropped,
interior empty lines are kept.

## Example

` + "```" + `json
{
  "guid": 1566100,
  "headline": "Transit Deal Reached",
  "byline": null,
  "page": 1,
  "online_section": "New York and Region; Business",
  "online_sections": ["New York and Region", "Business"],
  "people": [],
  "body_lines": ["LEAD: Transit workers agreed late Friday.", "The deal was signed."]
}
` + "```" + `
`

package catalog

// catalogSchema is the JSON schema every catalog document must satisfy.
const catalogSchema = `{
  "type": "object",
  "required": ["lessons"],
  "properties": {
    "lessons": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "title", "tags", "body", "xp"],
        "properties": {
          "id":    {"type": "string", "pattern": "^[a-z0-9][a-z0-9-]*$"},
          "title": {"type": "string", "minLength": 1},
          "tags":  {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}},
          "body":  {"type": "string", "minLength": 1},
          "xp":    {"type": "integer", "minimum": 1},
          "icon":  {"type": "string"},
          "color": {"type": "string"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

package catalog

// neighborhoodSchema is the JSON schema every catalog document must satisfy
const neighborhoodSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "city", "state", "metrics", "demographics"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string", "minLength": 1},
      "city": {"type": "string"},
      "state": {"type": "string"},
      "image": {"type": "string"},
      "description": {"type": "string"},
      "metrics": {
        "type": "object",
        "additionalProperties": {"type": "integer", "minimum": 1, "maximum": 10}
      },
      "demographics": {
        "type": "object",
        "required": ["medianAge", "medianIncome", "familyFriendly"],
        "properties": {
          "medianAge": {"type": "number", "minimum": 0},
          "medianIncome": {"type": "number", "minimum": 0},
          "familyFriendly": {"type": "integer", "minimum": 1, "maximum": 10},
          "diversityIndex": {"type": "integer", "minimum": 1, "maximum": 10}
        }
      },
      "highlights": {"type": "array", "items": {"type": "string"}},
      "challenges": {"type": "array", "items": {"type": "string"}},
      "amenities": {"type": "array", "items": {"type": "string"}},
      "housingTypes": {"type": "array", "items": {"type": "string"}},
      "transportOptions": {"type": "array", "items": {"type": "string"}}
    }
  }
}`

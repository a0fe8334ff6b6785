package evaluation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// MsgInvalidFormat is the user-facing text for an unusable evaluation reply.
const MsgInvalidFormat = "Resposta da IA em formato inválido"

var ErrInvalidFormat = errors.New("evaluation: invalid format")

// FormatError reports why an evaluation reply was rejected. Criterion is set when a
// specific rubric dimension is missing or not numeric.
type FormatError struct {
	Criterion Criterion
	Reason    string
	Err       error
}

func (e *FormatError) Error() string {
	if e.Criterion != "" {
		return fmt.Sprintf("invalid evaluation format: criterion %s: %s", e.Criterion, e.Reason)
	}
	return "invalid evaluation format: " + e.Reason
}

func (e *FormatError) Is(target error) bool { return target == ErrInvalidFormat }

func (e *FormatError) Unwrap() error { return e.Err }

const resultSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["scores", "summary"],
  "properties": {
    "scores": {
      "type": "object",
      "required": ["empathy", "problemSolving", "communication", "toneOfVoice", "efficiency"],
      "properties": {
        "empathy": {"$ref": "#/definitions/score"},
        "problemSolving": {"$ref": "#/definitions/score"},
        "communication": {"$ref": "#/definitions/score"},
        "toneOfVoice": {"$ref": "#/definitions/score"},
        "efficiency": {"$ref": "#/definitions/score"}
      }
    },
    "summary": {"type": "object"}
  },
  "definitions": {
    "score": {
      "type": "object",
      "required": ["score"],
      "properties": {
        "score": {"type": "number"}
      }
    }
  }
}`

var schema = mustSchema(resultSchema)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("evaluation schema: %v", err))
	}
	return s
}

// StripFences removes a leading ```json or ``` and a trailing ``` and trims the rest.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Decode strips code fences and checks the remainder is a JSON document.
// Nothing is repaired.
func Decode(raw string) ([]byte, error) {
	doc := []byte(StripFences(raw))
	var probe any
	if err := json.Unmarshal(doc, &probe); err != nil {
		return nil, &FormatError{Reason: "reply is not valid JSON", Err: err}
	}
	return doc, nil
}

// Validate checks a decoded document against the rubric schema and returns the
// typed result. Scores are not clamped and unknown criteria are ignored. Keys are
// matched exactly, so "EMPATHY" never shadows "empathy".
func Validate(doc []byte) (Result, error) {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return Result{}, &FormatError{Reason: "schema validation failed", Err: err}
	}
	if !res.Valid() {
		return Result{}, formatErrorFrom(res.Errors())
	}
	var out Result
	if err := json.Unmarshal(doc, &out); err != nil {
		return Result{}, &FormatError{Reason: "unexpected document shape", Err: err}
	}
	return out, nil
}

// Parse is Decode followed by Validate.
func Parse(raw string) (Result, error) {
	doc, err := Decode(raw)
	if err != nil {
		return Result{}, err
	}
	return Validate(doc)
}

// formatErrorFrom reports the first failing criterion in canonical order, falling
// back to the first schema error.
func formatErrorFrom(errs []gojsonschema.ResultError) *FormatError {
	byCriterion := make(map[Criterion]gojsonschema.ResultError, len(errs))
	for _, re := range errs {
		if c := criterionOf(re); c != "" {
			if _, seen := byCriterion[c]; !seen {
				byCriterion[c] = re
			}
		}
	}
	for _, c := range Criteria {
		if re, ok := byCriterion[c]; ok {
			return &FormatError{Criterion: c, Reason: re.Description()}
		}
	}
	if len(errs) == 0 {
		return &FormatError{Reason: "document does not match the rubric"}
	}
	return &FormatError{Reason: errs[0].String()}
}

func criterionOf(re gojsonschema.ResultError) Criterion {
	path := re.Field()
	if re.Type() == "required" {
		if prop, ok := re.Details()["property"].(string); ok {
			if path == gojsonschema.STRING_CONTEXT_ROOT {
				path = prop
			} else {
				path = path + "." + prop
			}
		}
	}
	parts := strings.Split(path, ".")
	if len(parts) < 2 || parts[0] != "scores" {
		return ""
	}
	for _, c := range Criteria {
		if string(c) == parts[1] {
			return c
		}
	}
	return ""
}

package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validReply = `{
  "scores": {
    "empathy": {"score": 7, "justification": "ouviu o cliente"},
    "problemSolving": {"score": 6, "justification": "resolveu parcialmente"},
    "communication": {"score": 8, "justification": "claro"},
    "toneOfVoice": {"score": 7, "justification": "cordial"},
    "efficiency": {"score": 9, "justification": "rápido"}
  },
  "summary": {"strength": "clareza", "developmentArea": "diagnóstico"}
}`

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"json fence":     "```json\n{\"a\":1}\n```",
		"bare fence":     "```\n{\"a\":1}\n```",
		"fence no break": "```{\"a\":1}```",
		"padded":         "  \n```json\n{\"a\":1}\n```  \n",
		"no fence":       "{\"a\":1}",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, `{"a":1}`, StripFences(in))
		})
	}
}

func TestParse_FencedAndBareRepliesAreEquivalent(t *testing.T) {
	bare, err := Parse(validReply)
	require.NoError(t, err)
	fenced, err := Parse("```json\n" + validReply + "\n```")
	require.NoError(t, err)

	assert.Equal(t, bare, fenced)
	assert.Equal(t, []float64{7, 6, 8, 7, 9}, bare.Scores.Values())
	assert.Equal(t, "ouviu o cliente", bare.Scores.Empathy.Justification)
	assert.Equal(t, "diagnóstico", bare.Summary.DevelopmentArea)
}

func TestDecode_RejectsNonJSON(t *testing.T) {
	_, err := Decode("Claro! Aqui está a avaliação: {scores: ...")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Empty(t, fe.Criterion)
}

func TestValidate_NamesMissingCriterion(t *testing.T) {
	doc := []byte(`{
	  "scores": {
	    "empathy": {"score": 7},
	    "problemSolving": {"score": 6},
	    "communication": {"score": 8},
	    "toneOfVoice": {"score": 7}
	  },
	  "summary": {}
	}`)

	_, err := Validate(doc)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, Efficiency, fe.Criterion)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestValidate_NamesNonNumericScore(t *testing.T) {
	doc := []byte(`{
	  "scores": {
	    "empathy": {"score": 7},
	    "problemSolving": {"score": "seis"},
	    "communication": {"score": 8},
	    "toneOfVoice": {"score": 7},
	    "efficiency": {"score": 9}
	  },
	  "summary": {}
	}`)

	_, err := Validate(doc)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, ProblemSolving, fe.Criterion)
}

func TestValidate_ReportsFirstCriterionInCanonicalOrder(t *testing.T) {
	doc := []byte(`{"scores": {"communication": {"score": 8}, "toneOfVoice": {"score": 7}}, "summary": {}}`)

	_, err := Validate(doc)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, Empathy, fe.Criterion)
}

func TestValidate_RequiresScoresAndSummary(t *testing.T) {
	for name, doc := range map[string]string{
		"no scores":  `{"summary": {}}`,
		"no summary": `{"scores": {"empathy": {"score": 1}, "problemSolving": {"score": 1}, "communication": {"score": 1}, "toneOfVoice": {"score": 1}, "efficiency": {"score": 1}}}`,
		"not object": `[1, 2, 3]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Validate([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestValidate_AcceptsOutOfRangeAndExtraCriteria(t *testing.T) {
	doc := []byte(`{
	  "scores": {
	    "empathy": {"score": 12},
	    "problemSolving": {"score": -1},
	    "communication": {"score": 8.5},
	    "toneOfVoice": {"score": 7},
	    "efficiency": {"score": 9},
	    "creativity": {"score": 10}
	  },
	  "summary": {"strength": "x", "developmentArea": "y"}
	}`)

	res, err := Validate(doc)
	require.NoError(t, err)
	assert.Equal(t, []float64{12, -1, 8.5, 7, 9}, res.Scores.Values())
}

func TestValidate_AcceptsNonStringText(t *testing.T) {
	doc := []byte(`{
	  "scores": {
	    "empathy": {"score": 7, "justification": 5},
	    "problemSolving": {"score": 6, "justification": null},
	    "communication": {"score": 8, "justification": ["claro", "objetivo"]},
	    "toneOfVoice": {"score": 7},
	    "efficiency": {"score": 9, "justification": "rápido"}
	  },
	  "summary": {"strength": 1, "developmentArea": {"tema": "diagnóstico"}}
	}`)

	res, err := Validate(doc)
	require.NoError(t, err)
	assert.Equal(t, "5", res.Scores.Empathy.Justification)
	assert.Equal(t, "", res.Scores.ProblemSolving.Justification)
	assert.Equal(t, `["claro", "objetivo"]`, res.Scores.Communication.Justification)
	assert.Equal(t, "rápido", res.Scores.Efficiency.Justification)
	assert.Equal(t, "1", res.Summary.Strength)
	assert.Equal(t, `{"tema": "diagnóstico"}`, res.Summary.DevelopmentArea)
	assert.Equal(t, []float64{7, 6, 8, 7, 9}, res.Scores.Values())
}

func TestValidate_KeysMatchExactly(t *testing.T) {
	doc := []byte(`{
	  "scores": {
	    "empathy": {"score": 7, "justification": "ok"},
	    "EMPATHY": {"score": 1, "justification": "shadow"},
	    "problemSolving": {"score": 6, "Score": 0},
	    "communication": {"score": 8},
	    "toneOfVoice": {"score": 7},
	    "efficiency": {"score": 9}
	  },
	  "SCORES": {"empathy": {"score": 0}},
	  "summary": {"strength": "clareza", "Strength": "outra"}
	}`)

	res, err := Validate(doc)
	require.NoError(t, err)
	assert.Equal(t, 7.0, res.Scores.Empathy.Score)
	assert.Equal(t, "ok", res.Scores.Empathy.Justification)
	assert.Equal(t, 6.0, res.Scores.ProblemSolving.Score)
	assert.Equal(t, "clareza", res.Summary.Strength)
}

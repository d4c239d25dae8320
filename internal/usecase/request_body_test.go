package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequestBody_TypedAndOrdered(t *testing.T) {
	p := preset("p",
		"tickers", "AAPL, MSFT",
		"min-iv", "0.50",
		"max-exp", "1e2",
		"calls", "true",
		"puts", "false",
		"limit", "+10",
		"order-by", "iv_desc",
		"sectors", `tech "growth"`,
	)

	body, err := BuildRequestBody(p)
	require.NoError(t, err)
	assert.Equal(t,
		`{"tickers":"AAPL,MSFT","min-iv":0.5,"max-exp":100,"calls":true,"puts":false,"limit":10,"order-by":"iv_desc","sectors":"tech \"growth\""}`,
		string(body))
	assert.True(t, json.Valid(body))
}

func TestBuildRequestBody_Empty(t *testing.T) {
	body, err := BuildRequestBody(preset("empty"))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(body))
}

func TestBuildRequestBody_RejectsUnvalidated(t *testing.T) {
	_, err := BuildRequestBody(preset("p", "min-iv", "abc"))
	assert.Error(t, err)
}

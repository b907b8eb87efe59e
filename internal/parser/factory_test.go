package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hbconv/internal/parser"
	_ "hbconv/internal/postbankparser"
	_ "hbconv/internal/spardaparser"
)

func TestFormatsAreRegistered(t *testing.T) {
	assert.Equal(t, []string{"postbank", "sparda"}, parser.Formats())
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := parser.New("dagobert", strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postbank")
	assert.Contains(t, err.Error(), "sparda")
}

func TestNewIsCaseInsensitive(t *testing.T) {
	r, err := parser.New("Postbank", strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, r)
}

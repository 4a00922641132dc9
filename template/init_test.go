package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/ddlview/internal/config"
	"github.com/Rana718/ddlview/internal/parser"
)

func TestGetSchema_Parses(t *testing.T) {
	tmpl := NewProjectTemplate(config.Default())

	doc, diags := parser.ParseWithDiagnostics(tmpl.GetSchema())
	require.Equal(t, []string{"users", "posts"}, doc.TableNames())
	assert.Equal(t, 11, doc.FieldCount())
	for _, d := range diags {
		assert.Equal(t, parser.DiagConstraint, d.Kind, d.String())
	}

	posts, _ := doc.Table("posts")
	published, ok := posts.Field("published")
	require.True(t, ok)
	assert.False(t, published.Required)
}

func TestGetEnvTemplate(t *testing.T) {
	env := NewProjectTemplate(config.Default()).GetEnvTemplate()
	assert.True(t, strings.HasPrefix(env, "DATABASE_URL=postgres://"))
	assert.Contains(t, env, "# REDIS_URL=")
}

package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertBasicPage(t *testing.T) {
	converter := NewConverter()

	text, err := converter.Convert(`<html><body>
		<h1>Installation</h1>
		<p>Install with the standalone installer.</p>
	</body></html>`)
	require.NoError(t, err)

	assert.Contains(t, text, "Installation")
	assert.Contains(t, text, "Install with the standalone installer.")
}

func TestConvertPrefersMainElement(t *testing.T) {
	converter := NewConverter()

	text, err := converter.Convert(`<html><body>
		<nav>Site navigation</nav>
		<main><p>Actual documentation.</p></main>
		<footer>Copyright notice</footer>
	</body></html>`)
	require.NoError(t, err)

	assert.Contains(t, text, "Actual documentation.")
	assert.NotContains(t, text, "Site navigation")
	assert.NotContains(t, text, "Copyright notice")
}

func TestConvertStripsChromeWithoutMain(t *testing.T) {
	converter := NewConverter()

	text, err := converter.Convert(`<html><body>
		<nav>Site navigation</nav>
		<script>console.log("tracking")</script>
		<p>Body content.</p>
	</body></html>`)
	require.NoError(t, err)

	assert.Contains(t, text, "Body content.")
	assert.NotContains(t, text, "Site navigation")
	assert.NotContains(t, text, "tracking")
}

func TestConvertPreservesCodeBlocks(t *testing.T) {
	converter := NewConverter()

	text, err := converter.Convert(`<html><body><main>
		<pre><code>uv pip install requests</code></pre>
	</main></body></html>`)
	require.NoError(t, err)

	assert.Contains(t, text, "uv pip install requests")
	// GitHub-flavored output fences code blocks, which the chunker uses
	// as its highest-priority break boundary.
	assert.Contains(t, text, "```")
}

func TestConvertPreservesLinks(t *testing.T) {
	converter := NewConverter()

	text, err := converter.Convert(
		`<html><body><main><a href="https://docs.astral.sh/uv/">the docs</a></main></body></html>`)
	require.NoError(t, err)

	assert.Contains(t, text, "the docs")
	assert.Contains(t, text, "https://docs.astral.sh/uv/")
}

func TestConvertEmptyPage(t *testing.T) {
	converter := NewConverter()

	text, err := converter.Convert(`<html><body><main></main></body></html>`)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(text))
}

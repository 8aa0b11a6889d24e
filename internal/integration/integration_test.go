package integration

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	if _, err := exec.LookPath("zsh"); err != nil {
		t.Skip("zsh not installed")
	}

	rendered, err := Render("/opt/bin/repotidy")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rendered, "#!/"), "shebang points at zsh")
	assert.Contains(t, rendered, `"/opt/bin/repotidy" summary --files-only`)
	assert.Contains(t, rendered, "rtf() {")
	assert.NotContains(t, rendered, "{{")
}

func TestRenderWithoutZsh(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Render("repotidy")
	assert.Error(t, err)
}

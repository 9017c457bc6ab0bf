package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanSpecifiers(t *testing.T) {
	src := `
@import "reset.css";
@import url("theme/dark.css");
.logo { background: url('../img/logo.svg'); }
.hero { background: url(hero.png); }
`
	assert.Equal(t, []string{
		"reset.css",
		"theme/dark.css",
		"../img/logo.svg",
		"hero.png",
	}, ScanSpecifiers([]byte(src)))
}

func TestScanSpecifiersSkipsRemoteAndData(t *testing.T) {
	src := `
@import url("https://cdn.example.com/reset.css");
.a { background: url(data:image/png;base64,AAAA); }
.b { background: url(//cdn.example.com/b.png); }
`
	assert.Empty(t, ScanSpecifiers([]byte(src)))
}

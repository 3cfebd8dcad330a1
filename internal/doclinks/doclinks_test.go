package doclinks

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhaserEditor2D/assetprep/internal/config"
)

func defaultRules(t *testing.T) []*Rule {
	var rules []*Rule
	for _, r := range config.Default().Links.Rules {
		rule, err := NewRule(r.Name, Kind(r.Kind), r.Pattern, r.Prefixes)
		require.NoError(t, err)
		rules = append(rules, rule)
	}
	return rules
}

const cleanDoc = `Scenes
======

See https://phasereditor2d.com/docs/v3/scene-editor.html for details,
or the latest at https://phasereditor2d.com/docs/latest/ and the API at
https://photonstorm.github.io/phaser3-docs/Phaser.Scene.html.
`

func TestNewRule(t *testing.T) {
	_, err := NewRule("bad", Kind("maybe"), "x", nil)
	assert.Error(t, err)

	_, err = NewRule("bad", Allow, "(", nil)
	assert.Error(t, err)

	r, err := NewRule("ok", Deny, "x+", []string{"xx"})
	require.NoError(t, err)
	assert.True(t, r.Violates("xxx"))
	assert.False(t, r.Violates("x"))
}

func TestCheckContent(t *testing.T) {
	rules := defaultRules(t)

	t.Run("clean", func(t *testing.T) {
		assert.Empty(t, CheckContent("clean.rst", []byte(cleanDoc), rules))
	})

	t.Run("wrong docs version", func(t *testing.T) {
		doc := cleanDoc + "\nOld: https://phasereditor2d.com/docs/v2/index.html\n"
		v := CheckContent("a.rst", []byte(doc), rules)
		require.Len(t, v, 1)
		assert.Equal(t, Violation{
			File: "a.rst",
			Line: 8,
			URL:  "https://phasereditor2d.com/docs/v2/index.html",
			Rule: "editor-docs",
			Kind: Allow,
		}, v[0])
	})

	t.Run("www docs host", func(t *testing.T) {
		v := CheckContent("a.rst", []byte("`docs <https://www.phasereditor2d.com/docs/v3/x.html>`_"), rules)
		require.Len(t, v, 1)
		assert.Equal(t, "https://www.phasereditor2d.com/docs/v3/x.html", v[0].URL)
	})

	t.Run("denied api links", func(t *testing.T) {
		doc := "http://photonstorm.github.io/phaser-ce/Phaser.Game.html\n" +
			"ok https://photonstorm.github.io/phaser3-docs/Phaser.Game.html\n" +
			"https://photonstorm.github.io/phaser-ce/Phaser.Sprite.html and https://photonstorm.github.io/phaser3-docs/index.html\n"
		v := CheckContent("api.rst", []byte(doc), rules)
		require.Len(t, v, 3)
		assert.Equal(t, 1, v[0].Line)
		assert.Equal(t, 3, v[1].Line)
		assert.Equal(t, "https://photonstorm.github.io/phaser-ce/Phaser.Sprite.html", v[1].URL)
		assert.Equal(t, "https://photonstorm.github.io/phaser3-docs/index.html", v[2].URL)
		for _, vv := range v {
			assert.Equal(t, Deny, vv.Kind)
			assert.Equal(t, "phaser-api", vv.Rule)
		}
	})

	t.Run("unrelated urls", func(t *testing.T) {
		assert.Empty(t, CheckContent("x.rst", []byte("http://example.com/docs/v2/ https://phaser.io"), rules))
	})
}

func TestChecker(t *testing.T) {
	fsys := fstest.MapFS{
		"b.rst":          {Data: []byte(cleanDoc)},
		"a.rst":          {Data: []byte("https://phasereditor2d.com/docs/v1/\n")},
		"notes.txt":      {Data: []byte("https://phasereditor2d.com/docs/v1/\n")},
		"sub/nested.rst": {Data: []byte("http://photonstorm.github.io/phaser-ce/\n")},
	}

	c := &Checker{FS: fsys, Pattern: "*.rst", Rules: defaultRules(t)}
	report, err := c.Check()
	require.NoError(t, err)
	assert.True(t, report.Failed)
	require.Len(t, report.Files, 2)
	assert.Equal(t, "a.rst", report.Files[0].File)
	assert.Len(t, report.Files[0].Violations, 1)
	assert.Equal(t, "b.rst", report.Files[1].File)
	assert.Empty(t, report.Files[1].Violations)

	c.Pattern = "**/*.rst"
	report, err = c.Check()
	require.NoError(t, err)
	require.Len(t, report.Files, 3)
	assert.Equal(t, "sub/nested.rst", report.Files[2].File)
	assert.Len(t, report.Violations(), 2)
}

func TestCheckerClean(t *testing.T) {
	fsys := fstest.MapFS{
		"a.rst": {Data: []byte(cleanDoc)},
		"b.rst": {Data: []byte("nothing to see\n")},
	}
	report, err := (&Checker{FS: fsys, Pattern: "*.rst", Rules: defaultRules(t)}).Check()
	require.NoError(t, err)
	assert.False(t, report.Failed)
	assert.Empty(t, report.Violations())
}

func TestCheckerOrderIndependent(t *testing.T) {
	docs := map[string]string{
		"one.rst":   "https://phasereditor2d.com/docs/v2/\n",
		"two.rst":   cleanDoc,
		"three.rst": "http://photonstorm.github.io/phaser/\n",
	}
	rules := defaultRules(t)

	first := fstest.MapFS{}
	for _, name := range []string{"one.rst", "two.rst", "three.rst"} {
		first[name] = &fstest.MapFile{Data: []byte(docs[name])}
	}
	second := fstest.MapFS{}
	for _, name := range []string{"three.rst", "one.rst", "two.rst"} {
		second[name] = &fstest.MapFile{Data: []byte(docs[name])}
	}

	r1, err := (&Checker{FS: first, Pattern: "*.rst", Rules: rules}).Check()
	require.NoError(t, err)
	r2, err := (&Checker{FS: second, Pattern: "*.rst", Rules: rules}).Check()
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
	assert.Len(t, r1.Violations(), 2)
}

func TestCheckerInvalidPattern(t *testing.T) {
	_, err := (&Checker{FS: fstest.MapFS{}, Pattern: "[", Rules: defaultRules(t)}).Check()
	assert.Error(t, err)
}

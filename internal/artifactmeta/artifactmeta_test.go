package artifactmeta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhaserEditor2D/assetprep/internal/hash"
)

const targetID = "phasereditor2d.com.executable.cocoa.macosx.x86_64"

var abcDigests = hash.Digests{
	Size:   3,
	MD5:    "900150983cd24fb0d6963f7d28e17f72",
	SHA256: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
}

const descriptor = `<?xml version='1.0' encoding='UTF-8'?>
<?artifactRepository version='1.1.0'?>
<repository name='Phaser Editor 2D' type='org.eclipse.equinox.p2.artifact.repository.simpleRepository' version='1'>
  <properties size='1'>
    <property name='p2.timestamp' value='1600000000000'/>
  </properties>
  <artifacts size='2'>
    <artifact classifier='binary' id='phasereditor2d.com.executable.cocoa.macosx.x86_64' version='1.5.3'>
      <properties size='6'>
        <property name='artifact.size' value='0'/>
        <property name='download.size' value='0'/>
        <property name='download.md5' value='old'/>
        <property name='download.checksum.md5' value='old'/>
        <property name='download.checksum.sha-256' value='old'/>
        <property name='download.contentType' value='application/zip'/>
      </properties>
    </artifact>
    <artifact classifier='binary' id='phasereditor2d.com.executable.gtk.linux.x86_64' version='1.5.3'>
      <properties size='2'>
        <property name='artifact.size' value='42'/>
        <property name='download.md5' value='keep'/>
      </properties>
    </artifact>
  </artifacts>
</repository>
`

func TestValue(t *testing.T) {
	for name, want := range map[string]string{
		"download.size":             "3",
		"artifact.size":             "3",
		"download.md5":              abcDigests.MD5,
		"download.checksum.md5":     abcDigests.MD5,
		"download.checksum.sha-256": abcDigests.SHA256,
	} {
		got, ok := Value(name, abcDigests)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := Value("download.contentType", abcDigests)
	assert.False(t, ok)
	assert.Len(t, PropertyNames, 5)
}

func TestApply(t *testing.T) {
	out, result, err := Apply([]byte(descriptor), targetID, abcDigests)
	require.NoError(t, err)
	assert.Equal(t, 1, result.MatchedArtifacts)
	assert.Equal(t, []Change{
		{Name: "artifact.size", Old: "0", New: "3"},
		{Name: "download.size", Old: "0", New: "3"},
		{Name: "download.md5", Old: "old", New: abcDigests.MD5},
		{Name: "download.checksum.md5", Old: "old", New: abcDigests.MD5},
		{Name: "download.checksum.sha-256", Old: "old", New: abcDigests.SHA256},
	}, result.Changes)

	expected := descriptor
	for _, r := range []struct{ from, to string }{
		{"name='artifact.size' value='0'", "name='artifact.size' value='3'"},
		{"name='download.size' value='0'", "name='download.size' value='3'"},
		{"name='download.md5' value='old'", "name='download.md5' value='" + abcDigests.MD5 + "'"},
		{"name='download.checksum.md5' value='old'", "name='download.checksum.md5' value='" + abcDigests.MD5 + "'"},
		{"name='download.checksum.sha-256' value='old'", "name='download.checksum.sha-256' value='" + abcDigests.SHA256 + "'"},
	} {
		expected = strings.Replace(expected, r.from, r.to, 1)
	}
	assert.Equal(t, expected, string(out), "only the patched values change")
	assert.Contains(t, string(out), "name='artifact.size' value='42'")
	assert.Contains(t, string(out), "name='download.md5' value='keep'")
}

func TestApplyNoMatch(t *testing.T) {
	in := []byte(descriptor)
	out, result, err := Apply(in, "no.such.artifact", abcDigests)
	require.NoError(t, err)
	assert.Equal(t, 0, result.MatchedArtifacts)
	assert.Empty(t, result.Changes)
	assert.Equal(t, in, out)
}

func TestApplyMultipleMatches(t *testing.T) {
	doc := `<artifacts>
<artifact id="a"><property name="download.size" value="1"/></artifact>
<artifact id="b"><property name="download.size" value="1"/></artifact>
<artifact id="a"><properties><property name="download.md5" value="x"></property></properties></artifact>
</artifacts>`
	out, result, err := Apply([]byte(doc), "a", abcDigests)
	require.NoError(t, err)
	assert.Equal(t, 2, result.MatchedArtifacts)
	assert.Len(t, result.Changes, 2)
	assert.Equal(t, `<artifacts>
<artifact id="a"><property name="download.size" value="3"/></artifact>
<artifact id="b"><property name="download.size" value="1"/></artifact>
<artifact id="a"><properties><property name="download.md5" value="`+abcDigests.MD5+`"></property></properties></artifact>
</artifacts>`, string(out))
}

func TestApplyNestedArtifact(t *testing.T) {
	doc := `<artifact id="a"><artifact id="b"><property name="download.size" value="1"/></artifact><property name="artifact.size" value="1"/></artifact>`
	out, result, err := Apply([]byte(doc), "a", abcDigests)
	require.NoError(t, err)
	assert.Equal(t, 1, result.MatchedArtifacts)
	assert.Equal(t, `<artifact id="a"><artifact id="b"><property name="download.size" value="1"/></artifact><property name="artifact.size" value="3"/></artifact>`, string(out))
}

func TestApplyMissingValue(t *testing.T) {
	doc := `<artifact id='a'><property name='download.size'/><property
    name='download.md5'   /></artifact>`
	out, result, err := Apply([]byte(doc), "a", abcDigests)
	require.NoError(t, err)
	assert.Len(t, result.Changes, 2)
	assert.Equal(t, "", result.Changes[0].Old)
	assert.Equal(t, `<artifact id='a'><property name='download.size' value='3'/><property
    name='download.md5' value='`+abcDigests.MD5+`'   /></artifact>`, string(out))
}

func TestApplyUnusualAttributes(t *testing.T) {
	doc := `<artifact id = "a"><property value = 'o"ld' name="download.checksum.sha-256" /></artifact>`
	out, _, err := Apply([]byte(doc), "a", abcDigests)
	require.NoError(t, err)
	assert.Equal(t, `<artifact id = "a"><property value = '`+abcDigests.SHA256+`' name="download.checksum.sha-256" /></artifact>`, string(out))
}

func TestApplyMalformed(t *testing.T) {
	for name, doc := range map[string]string{
		"mismatched":  `<artifact id="a"><property name="download.size" value="1"></artifact>`,
		"unclosed":    `<artifact id="a"><property name="download.size" value="1"/>`,
		"garbage":     `<artifact id="a" <<`,
		"empty":       ``,
		"blank":       "  \n\t",
		"text only":   `this is not xml at all`,
		"two roots":   `<repository/><repository/>`,
		"trailing":    `<repository><artifact id="a"/></repository> trailing`,
		"prolog only": `<?xml version='1.0' encoding='UTF-8'?>`,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := Apply([]byte(doc), "a", abcDigests)
			assert.Error(t, err)
		})
	}
}

func TestEscapeAttr(t *testing.T) {
	assert.Equal(t, "a&amp;b&lt;c&quot;d'", string(escapeAttr(`a&b<c"d'`, '"')))
	assert.Equal(t, `a&amp;b&lt;c"d&apos;`, string(escapeAttr(`a&b<c"d'`, '\'')))
}

func TestDiff(t *testing.T) {
	assert.Equal(t, "", Diff("a\nb\n", "a\nb\n"))
	assert.Equal(t, "-b\n+c\n", Diff("a\nb\nd\n", "a\nc\nd\n"))
}

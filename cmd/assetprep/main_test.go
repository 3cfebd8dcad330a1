package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kami-zh/go-capturer"
	"github.com/stretchr/testify/suite"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/infoplist"
	"github.com/PhaserEditor2D/assetprep/internal/output"
)

const plistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>CFBundleShortVersionString</key>
	<string>${ver}</string>
</dict>
</plist>
`

const descriptor = `<?xml version='1.0' encoding='UTF-8'?>
<repository>
  <artifacts>
    <artifact id='phasereditor2d.com.executable.cocoa.macosx.x86_64'>
      <properties>
        <property name='download.size' value='0'/>
        <property name='download.checksum.sha-256' value='0'/>
      </properties>
    </artifact>
  </artifacts>
</repository>
`

type MainTestSuite struct {
	suite.Suite
	dir string
}

func (suite *MainTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
}

func (suite *MainTestSuite) write(name, content string) string {
	path := filepath.Join(suite.dir, name)
	suite.Require().NoError(os.MkdirAll(filepath.Dir(path), 0755))
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0644))
	return path
}

func (suite *MainTestSuite) run(stdin string, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"assetprep"}, args...), false, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func (suite *MainTestSuite) TestParseGlobalFlags() {
	flags := parseGlobalFlags([]string{"render-plist", "--version", "1.0.0", "-o", "json", "--no-color", "-n", "--config=x.yaml"})
	suite.Equal(globalFlags{Config: "x.yaml", Output: "json", NonInteractive: true, NoColor: true}, flags)

	flags = parseGlobalFlags([]string{"check-links", "--bogus", "--verbose"})
	suite.True(flags.Verbose)
}

func (suite *MainTestSuite) TestOutputer() {
	for format, expected := range map[string]output.Format{
		"":     output.PlainFormatName,
		"json": output.JSONFormatName,
	} {
		out, err := initOutput(globalFlags{Output: format}, &bytes.Buffer{}, &bytes.Buffer{})
		suite.Require().NoError(err)
		suite.Equal(expected, out.Type())
	}

	code, _, stderr := suite.run("", "--output", "yaml", "check-links")
	suite.Equal(1, code)
	suite.Contains(stderr, "Unknown output format: yaml")
}

func (suite *MainTestSuite) TestUnwrapError() {
	code, err := unwrapError(nil)
	suite.Equal(0, code)
	suite.NoError(err)

	code, err = unwrapError(errs.WrapExitCode(errs.Silence(errs.New("reported")), 3))
	suite.Equal(3, code)
	suite.NoError(err)

	plain := errors.New("boom")
	code, err = unwrapError(plain)
	suite.Equal(1, code)
	suite.Equal(plain, err)
}

func (suite *MainTestSuite) TestRenderPlist() {
	suite.write("app-Info.plist-template", plistTemplate)
	suite.write("repository-Info.plist-template", plistTemplate)

	code, stdout, stderr := suite.run("", "render-plist", "--version", "1.5.3", "--template-dir", suite.dir, "--output-dir", suite.dir)
	suite.Equal(0, code, stderr)
	suite.Contains(stdout, "v1.5.3-app-Info.plist")

	b, err := os.ReadFile(infoplist.OutputPath(suite.dir, "1.5.3", "repository"))
	suite.Require().NoError(err)
	suite.Contains(string(b), "<string>1.5.3</string>")
}

func (suite *MainTestSuite) TestRenderPlistPrompt() {
	suite.write("app-Info.plist-template", plistTemplate)
	suite.write("repository-Info.plist-template", plistTemplate)

	code, _, stderr := suite.run("2.0.0\n", "render-plist", "--template-dir", suite.dir, "--output-dir", suite.dir)
	suite.Equal(0, code, stderr)
	suite.Contains(stderr, "Enter the product version (eg: 1.0.0): ")
	suite.FileExists(infoplist.OutputPath(suite.dir, "2.0.0", "app"))

	code, _, stderr = suite.run("\n", "render-plist", "--template-dir", suite.dir, "--output-dir", suite.dir)
	suite.Equal(1, code)
	suite.Contains(stderr, "A product version is required")
	suite.Contains(stderr, "Tip: Pass it with --version")
}

func (suite *MainTestSuite) TestConfigFile() {
	suite.write("tpl/app-Info.plist-template", plistTemplate)
	cfgPath := suite.write("assetprep.yaml", "plist:\n  template_dir: "+filepath.Join(suite.dir, "tpl")+
		"\n  output_dir: "+filepath.Join(suite.dir, "out")+"\n  templates: [app]\n")

	code, _, stderr := suite.run("", "--config", cfgPath, "render-plist", "--version", "3.0.0")
	suite.Equal(0, code, stderr)
	suite.FileExists(infoplist.OutputPath(filepath.Join(suite.dir, "out"), "3.0.0", "app"))

	code, _, stderr = suite.run("", "--config", filepath.Join(suite.dir, "missing.yaml"), "render-plist", "--version", "3.0.0")
	suite.Equal(1, code)
	suite.Contains(stderr, "Could not load configuration file")

	bad := suite.write("bad.yaml", "plist:\n  templates: []\n  token: ''\n  unknown: 1\n")
	code, _, _ = suite.run("", "--config", bad, "render-plist", "--version", "3.0.0")
	suite.Equal(1, code)
}

func (suite *MainTestSuite) TestCheckLinks() {
	suite.write("docs/good.rst", "https://phasereditor2d.com/docs/v3/index.html\n")
	docs := filepath.Join(suite.dir, "docs")

	code, stdout, stderr := suite.run("", "check-links", "--dir", docs)
	suite.Equal(0, code, stderr)
	suite.Contains(stdout, "All links are valid")

	suite.write("docs/bad.rst", "https://phasereditor2d.com/docs/v2/index.html\n")
	code, stdout, stderr = suite.run("", "check-links", "--dir", docs)
	suite.Equal(1, code)
	suite.Contains(stdout, "good.rst")
	suite.Contains(stdout, "bad.rst:1: https://phasereditor2d.com/docs/v2/index.html")
	suite.Contains(stdout, "Found 1 invalid links in 1 files")
	suite.NotContains(stderr, "bad.rst")

	code, stdout, _ = suite.run("", "-o", "json", "check-links", "--dir", docs)
	suite.Equal(1, code)
	var report struct{ Failed bool }
	suite.Require().NoError(json.Unmarshal([]byte(stdout), &report))
	suite.True(report.Failed)
}

func (suite *MainTestSuite) TestPatchArtifacts() {
	binary := suite.write("binary/app_1.0", "abc")
	desc := suite.write("artifacts.xml", descriptor)

	code, _, stderr := suite.run("", "patch-artifacts", "--binary", binary, "--descriptor", desc, "--dry-run")
	suite.Equal(0, code, stderr)
	b, err := os.ReadFile(desc)
	suite.Require().NoError(err)
	suite.Equal(descriptor, string(b), "dry run leaves the descriptor intact")

	code, stdout, stderr := suite.run("", "patch-artifacts", "--binary", binary, "--descriptor", desc)
	suite.Equal(0, code, stderr)
	suite.Contains(stdout, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
	b, err = os.ReadFile(desc)
	suite.Require().NoError(err)
	suite.Contains(string(b), "<property name='download.size' value='3'/>")

	code, _, stderr = suite.run("", "patch-artifacts", "--binary", binary, "--descriptor", desc, "--artifact-id", "other", "--strict")
	suite.Equal(1, code)
	suite.Contains(stderr, "No artifact 'other' found")
}

func (suite *MainTestSuite) TestExplicitFalseFlags() {
	binary := suite.write("binary/app_1.0", "abc")
	desc := suite.write("artifacts.xml", descriptor)
	cfgPath := suite.write("strict.yaml", "artifacts:\n  strict: true\nplist:\n  skip_validation: true\n"+
		"  template_dir: "+filepath.Join(suite.dir, "tpl")+"\n  output_dir: "+filepath.Join(suite.dir, "out")+"\n  templates: [app]\n")

	args := []string{"--config", cfgPath, "patch-artifacts", "--binary", binary, "--descriptor", desc, "--artifact-id", "other"}
	code, _, _ := suite.run("", args...)
	suite.Equal(1, code, "strict from the config file")
	code, _, stderr := suite.run("", append(args, "--strict=false")...)
	suite.Equal(0, code, stderr)

	suite.write("tpl/app-Info.plist-template", "<plist><dict><key>v</key><string>${ver}</string></plist>")
	code, _, stderr = suite.run("", "--config", cfgPath, "render-plist", "--version", "3.0.0")
	suite.Equal(0, code, stderr)
	code, _, _ = suite.run("", "--config", cfgPath, "render-plist", "--version", "3.0.0", "--no-validate=false")
	suite.Equal(1, code, "validation switched back on")
}

func (suite *MainTestSuite) TestUnknownCommand() {
	code, _, stderr := suite.run("", "publish")
	suite.Equal(1, code)
	suite.Contains(stderr, "Unknown command")
}

func (suite *MainTestSuite) TestStdout() {
	suite.write("docs/good.rst", "https://phasereditor2d.com/docs/latest/\n")

	var code int
	out := capturer.CaptureStdout(func() {
		code = run([]string{"assetprep", "check-links", "--dir", filepath.Join(suite.dir, "docs"), "--no-color"},
			false, strings.NewReader(""), os.Stdout, os.Stderr)
	})
	suite.Equal(0, code)
	suite.Contains(out, "All links are valid")
}

func TestMainTestSuite(t *testing.T) {
	suite.Run(t, new(MainTestSuite))
}

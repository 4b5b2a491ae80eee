package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/convo-search/internal"
	"github.com/iksnae/convo-search/testutil"
)

// resetCommandState restores flag variables, which persist between Execute calls
func resetCommandState() {
	verbose = false
	archivePath = ""
	configPath = ""
	logLevel = ""
	cfg = internal.DefaultConfig()

	listLanguage = "all"

	searchLanguage = "all"
	searchDateRange = "all"
	searchTopics = nil
	searchMinMessages = 0
	searchLimit = 0
	searchSnippets = 2

	showLimit = 0
	showRaw = false
	showQuery = ""

	format = ""
	outputDir = ""
	sessionIDs = nil
	exportQuery = ""
	exportLanguage = "all"
	exportDateRange = "all"
	exportTopics = nil
	exportMinMessage = 0

	browseLanguage = "all"
	browseDateRange = "all"
	browseTopics = nil
	browseMinMessages = 0
	browseOutputDir = ""

	healthcheckDetails = false
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandWithInput(t, "", args...)
}

func executeCommandWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetCommandState()
	t.Cleanup(func() { internal.SetLogLevel(internal.LogLevelInfo) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(input))
	defer rootCmd.SetIn(nil)

	err := rootCmd.Execute()
	return stdout.String(), err
}

// archiveSessions is a small archive shared by the command tests
func archiveSessions() []*internal.ConversationSession {
	dharma := internal.CreateTestSessionWithMessages("dharma-1", "Dharma talk", []internal.Message{
		{Text: "What is dharma?", Sender: internal.SenderUser},
		{Text: "Duty, order and right conduct.", Sender: internal.SenderAssistant},
	})
	karma := internal.CreateTestSessionWithMessages("karma-1", "Karma yoga", []internal.Message{
		{Text: "Tell me about action", Sender: internal.SenderUser},
		{Text: "Action performed as dharma, without attachment.", Sender: internal.SenderAssistant},
	})
	karma.Metadata.Topics = []string{"karma", "yoga"}
	gita := internal.CreateTestSessionWithMessages("gita-1", "Gita study", []internal.Message{
		{Text: "Chapter two", Sender: internal.SenderUser},
	})
	gita.Language = internal.LanguageHindi
	return []*internal.ConversationSession{dharma, karma, gita}
}

// newTestArchive writes sessions into a fresh file archive
func newTestArchive(t *testing.T, sessions ...*internal.ConversationSession) string {
	t.Helper()
	dir := filepath.Join(testutil.CreateTempDir(t), "archive")
	if _, err := internal.NewFileStore(dir).SaveSessions(sessions); err != nil {
		t.Fatalf("failed to create test archive: %v", err)
	}
	return dir
}

// writeTestConfig writes a config pointing at archive with a short debounce
func writeTestConfig(t *testing.T, archive, outDir string) string {
	t.Helper()
	path := filepath.Join(testutil.CreateTempDir(t), "config.yaml")
	content := fmt.Sprintf("archive: %s\noutput_dir: %s\ndebounce: 10ms\nlog_level: error\ndefault_format: json\n", archive, outDir)
	testutil.CreateFileFixture(t, path, []byte(content))
	return path
}


package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/iksnae/convo-search/internal"
	"github.com/iksnae/convo-search/internal/export"
	"github.com/spf13/cobra"
)

var (
	browseLanguage    string
	browseDateRange   string
	browseTopics      []string
	browseMinMessages int
	browseOutputDir   string
)

const browseSettleTimeout = 10 * time.Second

const browseHelp = `Type a query to search. Commands:
  :select N [N...]   toggle results by number
  :all               select every visible result
  :clear             clear the selection
  :selected          list selected session IDs
  :export [format]   export the selection (txt, json, csv, markdown, pdf)
  :lang L            set language filter (all, en, hi)
  :range R           set date range (all, today, week, month, year)
  :topic T[,T...]    set topic filter (empty to clear)
  :min N             set minimum message count
  :help              show this help
  :quit              exit`

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Search interactively and export a selection",
	Long: `Browse the archive interactively. Each line you type replaces the search
query; results refresh once you stop typing for the configured debounce
period. Select results by number and export them in one file.

` + browseHelp,
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, err := loadFilters("", browseLanguage, browseDateRange, browseTopics, browseMinMessages)
		if err != nil {
			return err
		}

		store, closeStore, err := openStore(cfg.ArchivePath)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer closeStore()

		dir := browseOutputDir
		if dir == "" {
			dir = cfg.OutputDir
		}

		b := newBrowser(cmd.OutOrStdout(), store, dir, filters)
		defer b.view.Close()
		return b.run(cmd.Context(), cmd.InOrStdin())
	},
}

// browser is a line-oriented front end for an ArchiveView
type browser struct {
	out    io.Writer
	outMu  sync.Mutex
	view   *internal.ArchiveView
	saver  *export.FileSaver
	limit  int
	format internal.ExportFormat
}

func newBrowser(out io.Writer, store internal.ConversationStore, outputDir string, filters internal.SearchFilters) *browser {
	b := &browser{
		out:    out,
		saver:  export.NewFileSaver(outputDir),
		limit:  cfg.ResultLimit,
		format: internal.FormatJSON,
	}
	if f, err := internal.ParseExportFormat(cfg.DefaultFormat); err == nil {
		b.format = f
	}

	engine := internal.NewEngine(store)
	b.view = internal.NewArchiveView(engine, export.NewSessionExporter(store, nil).WithPDFFont(cfg.PDFFont),
		internal.WithDebounce(cfg.Debounce),
		internal.WithDownloadTrigger(b.saver),
		internal.WithResultsHandler(b.showResults),
	)
	b.view.OnSearchFiltersChanged(filters)
	return b
}

func (b *browser) run(ctx context.Context, in io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}

	b.println(idStyle.Render("Type a query, or :help for commands"))
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			b.view.OnSearchFiltersChanged(b.view.Filters().WithQuery(line))
			continue
		}
		if quit := b.command(ctx, line); quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	b.settle()
	return nil
}

// command runs one ':' command and reports whether the session should end
func (b *browser) command(ctx context.Context, line string) bool {
	fields := strings.Fields(strings.TrimPrefix(line, ":"))
	if len(fields) == 0 {
		return false
	}
	name, args := fields[0], fields[1:]

	switch name {
	case "q", "quit", "exit":
		return true
	case "h", "help":
		b.println(browseHelp)
	case "s", "select":
		b.settle()
		b.toggle(args)
	case "a", "all":
		b.settle()
		b.view.SelectAllVisible()
		b.printSelection()
	case "c", "clear":
		b.view.ClearSelection()
		b.printSelection()
	case "selected":
		b.printSelection()
	case "e", "export":
		b.settle()
		b.export(ctx, args)
	case "lang", "range", "topic", "min":
		b.refilter(name, strings.Join(args, " "))
	default:
		b.warn(fmt.Sprintf("unknown command :%s (try :help)", name))
	}
	return false
}

func (b *browser) toggle(args []string) {
	visible := b.view.VisibleIDs()
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(visible) {
			b.warn(fmt.Sprintf("no result #%s", arg))
			continue
		}
		b.view.ToggleSelection(visible[n-1])
	}
	b.printSelection()
}

func (b *browser) export(ctx context.Context, args []string) {
	format := b.format
	if len(args) > 0 {
		f, err := internal.ParseExportFormat(args[0])
		if err != nil {
			b.warn(err.Error())
			return
		}
		format = f
	}

	payload, err := b.view.ExportSelected(ctx, format)
	if err != nil {
		b.outMu.Lock()
		internal.PrintError(b.out, err.Error())
		b.outMu.Unlock()
		return
	}
	b.outMu.Lock()
	internal.PrintSuccess(b.out, fmt.Sprintf("Exported to %s", b.saver.Path(payload)))
	b.outMu.Unlock()
	b.printSelection()
}

func (b *browser) refilter(name, value string) {
	filters := b.view.Filters()
	switch name {
	case "lang":
		lang, err := internal.ParseLanguage(value)
		if err != nil {
			b.warn(err.Error())
			return
		}
		filters.Language = lang
	case "range":
		dr, err := internal.ParseDateRange(value)
		if err != nil {
			b.warn(err.Error())
			return
		}
		filters.DateRange = dr
	case "topic":
		filters.Topics = nil
		for _, topic := range strings.Split(value, ",") {
			if topic = strings.TrimSpace(topic); topic != "" {
				filters.Topics = append(filters.Topics, topic)
			}
		}
	case "min":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			b.warn(fmt.Sprintf("invalid message count %q", value))
			return
		}
		filters.MinMessages = n
	}
	b.view.OnSearchFiltersChanged(filters)
}

// settle waits for a pending search to be delivered
func (b *browser) settle() {
	deadline := time.Now().Add(browseSettleTimeout)
	for b.view.State().Searching && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
}

func (b *browser) showResults(results []internal.SearchResult) {
	b.outMu.Lock()
	defer b.outMu.Unlock()

	fmt.Fprintln(b.out)
	if len(results) == 0 {
		fmt.Fprintln(b.out, headerStyle.Render("🔍 No matching conversations"))
		return
	}
	fmt.Fprintln(b.out, headerStyle.Render(fmt.Sprintf("🔍 %d matching conversation(s)", len(results))))
	for i, result := range results {
		if b.limit > 0 && i >= b.limit {
			fmt.Fprintln(b.out, idStyle.Render(fmt.Sprintf("… %d more", len(results)-i)))
			break
		}
		mark := " "
		if b.view.IsSelected(result.Session.ID) {
			mark = countStyle.Render("*")
		}
		fmt.Fprintf(b.out, "%s%3d. %s  %s  %s\n",
			mark,
			i+1,
			scoreStyle.Render(fmt.Sprintf("%5.1f", result.RelevanceScore)),
			result.HighlightedTitle.Render(markMatch),
			idStyle.Render(result.Session.ID))
	}
}

func (b *browser) printSelection() {
	selected := b.view.Selection()
	if len(selected) == 0 {
		b.println(idStyle.Render("Selection is empty"))
		return
	}
	b.println(fmt.Sprintf("%s %s", countStyle.Render(fmt.Sprintf("%d selected:", len(selected))), strings.Join(selected, ", ")))
}

func (b *browser) println(s string) {
	b.outMu.Lock()
	defer b.outMu.Unlock()
	fmt.Fprintln(b.out, s)
}

func (b *browser) warn(s string) {
	b.outMu.Lock()
	defer b.outMu.Unlock()
	internal.PrintWarning(b.out, s)
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().StringVar(&browseLanguage, "language", "all", "Initial language filter (all, en, hi)")
	browseCmd.Flags().StringVar(&browseDateRange, "date-range", "all", "Initial date range (all, today, week, month, year)")
	browseCmd.Flags().StringSliceVar(&browseTopics, "topic", nil, "Initial topic filter (repeatable)")
	browseCmd.Flags().IntVar(&browseMinMessages, "min-messages", 0, "Initial minimum number of messages")
	browseCmd.Flags().StringVarP(&browseOutputDir, "out", "o", "", "Export directory (default from config)")
}

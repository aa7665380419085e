package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	dbeditor "github.com/Razielxkx/Database-editor"
	"github.com/Razielxkx/Database-editor/core"
	"github.com/Razielxkx/Database-editor/db"
	"github.com/Razielxkx/Database-editor/schema"
)

const (
	PromptColor  = "\033[36m" // Cyan
	ErrorColor   = "\033[31m" // Red
	SuccessColor = "\033[32m" // Green
	ResetColor   = "\033[0m"
	BoldColor    = "\033[1m"
)

// Version is set at build time via -ldflags
var Version = "dev"

// CLI holds the CLI state
type CLI struct {
	instance    *dbeditor.Instance
	engine      *db.Engine
	identity    core.Identity
	history     []string
	historyFile string
	reader      *bufio.Reader
}

func main() {
	dbPath := flag.String("db", "", "Database file (empty for in-memory)")
	journalDir := flag.String("journal", "", "Change journal directory (empty for in-memory)")
	userName := flag.String("name", "dbeditor", "Author name for journaled changes")
	userEmail := flag.String("email", "cli@dbeditor.local", "Author email for journaled changes")
	flag.Parse()

	printBanner()

	if *dbPath == "" {
		fmt.Printf("%sUsing in-memory database%s\n", SuccessColor, ResetColor)
	} else {
		fmt.Printf("%sUsing database file: %s%s\n", SuccessColor, *dbPath, ResetColor)
	}

	instance, err := dbeditor.Open(*dbPath, *journalDir)
	if err != nil {
		fmt.Printf("%sError: %v%s\n", ErrorColor, err, ResetColor)
		os.Exit(1)
	}
	defer instance.Close()

	identity := core.Identity{Name: *userName, Email: *userEmail}
	cli := &CLI{
		instance:    instance,
		engine:      instance.Engine(identity),
		identity:    identity,
		history:     make([]string, 0),
		historyFile: getHistoryPath(),
		reader:      bufio.NewReader(os.Stdin),
	}

	cli.loadHistory()
	cli.run()
}

func printBanner() {
	fmt.Println()
	fmt.Printf("%s%s╔═══════════════════════════════════════╗%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Printf("%s%s║          Database Editor v%-8s    ║%s\n", BoldColor, PromptColor, Version, ResetColor)
	fmt.Printf("%s%s║   DuckDB storage, journaled changes   ║%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Printf("%s%s╚═══════════════════════════════════════╝%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Println()
	fmt.Println("Type .help for commands, .quit to exit")
	fmt.Println()
}

func (cli *CLI) run() {
	for {
		fmt.Printf("%sdbeditor>%s ", PromptColor, ResetColor)

		input, err := cli.reader.ReadString('\n')
		if err != nil {
			fmt.Printf("\n%sGoodbye!%s\n", SuccessColor, ResetColor)
			cli.saveHistory()
			return
		}

		input = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(input, "\n"), "\r"))
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, ".") {
			cli.handleCommand(input)
			continue
		}

		// One statement per line.
		statement := strings.TrimSuffix(input, ";")
		cli.addToHistory(input)

		result, err := cli.engine.Execute(statement)
		if err != nil {
			fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		} else {
			result.Display()
		}
	}
}

func (cli *CLI) handleCommand(input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit", ".q":
		fmt.Printf("%sGoodbye!%s\n", SuccessColor, ResetColor)
		cli.saveHistory()
		os.Exit(0)

	case ".help", ".h", ".?":
		cli.printHelp()

	case ".tables":
		cli.showTables()

	case ".columns":
		if len(parts) > 1 {
			cli.showColumns(parts[1])
		} else {
			fmt.Printf("%s✗ Usage: .columns <table>%s\n", ErrorColor, ResetColor)
		}

	case ".create":
		if len(parts) > 1 {
			cli.createTable(parts[1])
		} else {
			fmt.Printf("%s✗ Usage: .create <table>%s\n", ErrorColor, ResetColor)
		}

	case ".drop":
		if len(parts) > 1 {
			if err := cli.instance.Schema.DropTable(parts[1], cli.identity); err != nil {
				fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
			} else {
				fmt.Printf("%s✓ Dropped table: %s%s\n", SuccessColor, parts[1], ResetColor)
			}
		} else {
			fmt.Printf("%s✗ Usage: .drop <table>%s\n", ErrorColor, ResetColor)
		}

	case ".export":
		if len(parts) > 2 {
			rows, err := cli.engine.ExportCSV(parts[1], parts[2], nil)
			if err != nil {
				fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
			} else {
				fmt.Printf("%s✓ Exported %d row(s) to %s%s\n", SuccessColor, rows, parts[2], ResetColor)
			}
		} else {
			fmt.Printf("%s✗ Usage: .export <table> <target>%s\n", ErrorColor, ResetColor)
		}

	case ".import":
		if len(parts) > 2 {
			rows, err := cli.engine.ImportCSV(parts[1], parts[2], nil)
			if err != nil {
				fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
			} else {
				fmt.Printf("%s✓ Imported %d row(s) from %s%s\n", SuccessColor, rows, parts[2], ResetColor)
			}
		} else {
			fmt.Printf("%s✗ Usage: .import <table> <source>%s\n", ErrorColor, ResetColor)
		}

	case ".log":
		table := ""
		if len(parts) > 1 {
			table = parts[1]
		}
		cli.showLog(table)

	case ".history":
		cli.printHistory()

	case ".clear", ".cls":
		fmt.Print("\033[H\033[2J")

	case ".version":
		fmt.Printf("Database Editor version %s\n", Version)

	default:
		fmt.Printf("%s✗ Unknown command: %s (type .help for commands)%s\n", ErrorColor, parts[0], ResetColor)
	}
}

func (cli *CLI) printHelp() {
	fmt.Println()
	fmt.Printf("%s%sSpecial Commands:%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Println("  .help, .h              Show this help message")
	fmt.Println("  .quit, .exit           Exit the editor")
	fmt.Println("  .tables                List tables")
	fmt.Println("  .columns <table>       Describe a table's columns")
	fmt.Println("  .create <table>        Create a table interactively")
	fmt.Println("  .drop <table>          Drop a table")
	fmt.Println("  .export <table> <url>  Export a table as CSV (local, file://, s3://)")
	fmt.Println("  .import <table> <url>  Import CSV rows (local, file://, http(s)://, s3://)")
	fmt.Println("  .log [table]           Show the change journal")
	fmt.Println("  .history               Show command history")
	fmt.Println("  .clear                 Clear the screen")
	fmt.Println("  .version               Show version info")
	fmt.Println()
	fmt.Printf("%s%sSQL Commands:%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Println("  SELECT * FROM <table> [WHERE <col> <op> <val> [AND ...]]")
	fmt.Println("  INSERT INTO <table> VALUES (<vals>)")
	fmt.Println("  INSERT INTO <table> (<cols>) VALUES (<vals>)")
	fmt.Println("  UPDATE <table> SET <col> = <val>, ... [WHERE ...]")
	fmt.Println("  DELETE FROM <table> WHERE ...")
	fmt.Println()
	fmt.Printf("%s%sColumn Types:%s int, bool, decimal/money, datetime, str/varchar/nvarchar(N)\n",
		BoldColor, PromptColor, ResetColor)
	fmt.Println()
}

// createTable prompts for columns until a blank name is entered.
func (cli *CLI) createTable(name string) {
	fmt.Println("Enter columns as <name> <type>, blank name to finish.")

	var specs []core.ColumnSpec
	for {
		fmt.Printf("%scolumn>%s ", PromptColor, ResetColor)
		line, err := cli.reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			fmt.Printf("%s✗ Expected <name> <type>%s\n", ErrorColor, ResetColor)
			continue
		}
		if !schema.ValidType(fields[1]) {
			fmt.Printf("%s✗ Unsupported type: %s%s\n", ErrorColor, fields[1], ResetColor)
			continue
		}
		specs = append(specs, core.ColumnSpec{
			Name:     fields[0],
			TypeDesc: fields[1],
			Nullable: fields[0] != "id",
		})
	}

	if len(specs) == 0 {
		fmt.Printf("%s✗ No columns given%s\n", ErrorColor, ResetColor)
		return
	}

	if err := cli.instance.Schema.CreateTable(name, specs, cli.identity); err != nil {
		fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		return
	}
	fmt.Printf("%s✓ Created table: %s%s\n", SuccessColor, name, ResetColor)
}

func (cli *CLI) showTables() {
	tables, err := cli.instance.Schema.ListTables()
	if err != nil {
		fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		return
	}
	if len(tables) == 0 {
		fmt.Println("No tables")
		return
	}
	for _, table := range tables {
		fmt.Println("  " + table)
	}
}

func (cli *CLI) showColumns(table string) {
	columns, err := cli.instance.Schema.ListColumns(table)
	if err != nil {
		fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		return
	}
	for _, column := range columns {
		desc := column.Type.String()
		if column.Length > 0 {
			desc = fmt.Sprintf("%s(%d)", desc, column.Length)
		}
		if column.PrimaryKey {
			desc += " primary key"
		}
		fmt.Printf("  %-20s %s\n", column.Name, desc)
	}
}

func (cli *CLI) showLog(table string) {
	entries, err := cli.instance.Journal.Entries(table)
	if err != nil {
		fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		return
	}
	if len(entries) == 0 {
		fmt.Println("No journaled changes")
		return
	}
	for _, entry := range entries {
		line := fmt.Sprintf("  %s  %-12s %s", entry.When.Format("2006-01-02 15:04:05"), entry.Kind, entry.Table)
		if entry.Rows > 0 {
			line += fmt.Sprintf(" (%d rows)", entry.Rows)
		}
		fmt.Println(line)
	}
}

func (cli *CLI) addToHistory(cmd string) {
	// Don't add duplicates of the last command
	if len(cli.history) > 0 && cli.history[len(cli.history)-1] == cmd {
		return
	}
	cli.history = append(cli.history, cmd)

	if len(cli.history) > 1000 {
		cli.history = cli.history[len(cli.history)-1000:]
	}
}

func (cli *CLI) printHistory() {
	if len(cli.history) == 0 {
		fmt.Println("No command history")
		return
	}

	start := 0
	if len(cli.history) > 20 {
		start = len(cli.history) - 20
	}
	for i := start; i < len(cli.history); i++ {
		fmt.Printf("  %3d  %s\n", i+1, cli.history[i])
	}
}

func getHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dbeditor_history")
}

func (cli *CLI) loadHistory() {
	if cli.historyFile == "" {
		return
	}

	file, err := os.Open(cli.historyFile)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		cli.history = append(cli.history, scanner.Text())
	}
}

func (cli *CLI) saveHistory() {
	if cli.historyFile == "" {
		return
	}

	file, err := os.Create(cli.historyFile)
	if err != nil {
		return
	}
	defer file.Close()

	start := 0
	if len(cli.history) > 1000 {
		start = len(cli.history) - 1000
	}
	for i := start; i < len(cli.history); i++ {
		_, _ = file.WriteString(cli.history[i] + "\n")
	}
}

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	flag.Parse()
	args := flag.Args()

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: mcp-client <server-command> [<args>]")
		fmt.Fprintln(os.Stderr, "Example: mcp-client ./chartdeck mcp --variant simple")
		os.Exit(2)
	}

	ctx := context.Background()

	// Start the server as a subprocess
	cmd := exec.Command(args[0], args[1:]...)
	transport := &mcp.CommandTransport{Command: cmd}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "chartdeck-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer session.Close()

	fmt.Println("Connected to Chartdeck MCP Server!")
	fmt.Println("Available commands:")
	fmt.Println("  /tools        - List available tools")
	fmt.Println("  /list         - List the chart catalog")
	fmt.Println("  /current      - Describe the chart on screen")
	fmt.Println("  /next, /prev  - Move through the slideshow")
	fmt.Println("  /show <n>     - Jump to chart n (zero-based)")
	fmt.Println("  /stats [n]    - Series statistics of chart n or the current one")
	fmt.Println("  /exit         - Exit the client")
	fmt.Println()

	// Interactive REPL
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		parts := strings.Fields(input)

		switch parts[0] {
		case "/exit":
			fmt.Println("Goodbye!")
			return
		case "/tools":
			listTools(ctx, session)
		case "/list":
			callTool(ctx, session, "list_charts", nil)
		case "/current":
			callTool(ctx, session, "current_chart", nil)
		case "/next":
			callTool(ctx, session, "next_chart", nil)
		case "/prev":
			callTool(ctx, session, "previous_chart", nil)
		case "/show":
			n, ok := index(parts)
			if !ok {
				fmt.Println("Usage: /show <n>")
				continue
			}
			callTool(ctx, session, "show_chart", map[string]interface{}{"index": n})
		case "/stats":
			args := map[string]interface{}{}
			if n, ok := index(parts); ok {
				args["index"] = n
			}
			callTool(ctx, session, "chart_stats", args)
		default:
			fmt.Printf("Unknown command %q, try /tools\n", parts[0])
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Scanner error: %v", err)
	}
}

func index(parts []string) (int, bool) {
	if len(parts) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(parts[1])
	return n, err == nil
}

func listTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("Available Tools:")
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			log.Printf("Error listing tools: %v", err)
			return
		}
		fmt.Printf("  - %s: %s\n", tool.Name, tool.Description)
	}
	fmt.Println()
}

func callTool(ctx context.Context, session *mcp.ClientSession, toolName string, args map[string]interface{}) {
	if args == nil {
		args = map[string]interface{}{}
	}
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		log.Printf("Error calling tool: %v", err)
		return
	}

	printResult(result)
}

func printResult(result *mcp.CallToolResult) {
	if result.IsError {
		fmt.Printf("❌ Error: ")
	} else {
		fmt.Printf("✅ Result: ")
	}

	// structured output is the tool's result type
	if result.StructuredContent != nil && !result.IsError {
		if jsonData, err := json.MarshalIndent(result.StructuredContent, "", "  "); err == nil {
			fmt.Println(string(jsonData))
			fmt.Println()
			return
		}
	}
	for _, content := range result.Content {
		switch v := content.(type) {
		case *mcp.TextContent:
			fmt.Println(v.Text)
		default:
			jsonData, err := json.MarshalIndent(content, "", "  ")
			if err != nil {
				fmt.Printf("%+v\n", content)
			} else {
				fmt.Println(string(jsonData))
			}
		}
	}
	fmt.Println()
}

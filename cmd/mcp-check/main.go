package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// chartResult mirrors the fields of the server's chart result this check reads.
type chartResult struct {
	Index    int    `json:"index"`
	Counter  string `json:"counter"`
	Kind     string `json:"kind"`
	Renderer string `json:"renderer"`
	Fallback bool   `json:"fallback"`
}

func main() {
	// CHARTDECK_* settings reach the server through the environment
	_ = godotenv.Load(".env")

	fmt.Println("🧪 Testing Chartdeck MCP Server and Tool Calling")
	fmt.Println("================================================")
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	serverPath := findServerBinary()
	if serverPath == "" {
		log.Fatal("❌ chartdeck binary not found. Run: go build -o chartdeck .")
	}
	fmt.Println("✅ Test 1: chartdeck binary found")

	cmd := exec.Command(serverPath, "mcp", "--variant", "simple", "--log-dir", os.TempDir())
	cmd.Env = os.Environ()
	cmd.Stderr = os.Stderr
	transport := &mcp.CommandTransport{Command: cmd}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "mcp-check",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MCP server: %v", err)
	}
	defer session.Close()
	fmt.Println("✅ Test 2: Connected to MCP server")

	fmt.Println("\n✓ Test 3: Listing available tools")
	listResult, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Fatalf("❌ Failed to list tools: %v", err)
	}
	fmt.Printf("  Found %d tools:\n", len(listResult.Tools))
	for _, tool := range listResult.Tools {
		fmt.Printf("  - %s: %s\n", tool.Name, tool.Description)
	}

	failed := 0
	check := func(ok bool, format string, args ...any) {
		if ok {
			fmt.Printf("  ✅ "+format+"\n", args...)
			return
		}
		failed++
		fmt.Printf("  ❌ "+format+"\n", args...)
	}

	fmt.Println("\n✓ Test 4: Walking the slideshow with next_chart")
	var last chartResult
	for i := 0; i < 5; i++ {
		if err := call(ctx, session, "next_chart", nil, &last); err != nil {
			check(false, "next_chart failed: %v", err)
			break
		}
		fmt.Printf("    %s %s (renderer %s, fallback %v)\n", last.Counter, last.Kind, last.Renderer, last.Fallback)
	}
	check(last.Index == 0 && last.Counter == "1/5", "five advances wrap to 1/5, got %s", last.Counter)

	fmt.Println("\n✓ Test 5: previous_chart wraps backwards")
	if err := call(ctx, session, "previous_chart", nil, &last); err != nil {
		check(false, "previous_chart failed: %v", err)
	} else {
		check(last.Counter == "5/5", "previous from the first chart shows 5/5, got %s", last.Counter)
	}

	fmt.Println("\n✓ Test 6: show_chart rejects an index out of range")
	err = call(ctx, session, "show_chart", map[string]interface{}{"index": 99}, nil)
	check(err != nil, "out of range index reported: %v", err)

	fmt.Println("\n✓ Test 7: chart_stats")
	var sums map[string]any
	if err := call(ctx, session, "chart_stats", map[string]interface{}{"index": 0}, &sums); err != nil {
		fmt.Printf("  ⚠️  Stats tool failed (DuckDB may be unavailable): %v\n", err)
	} else {
		check(sums["kind"] == "line", "stats for the line chart, got %v", sums["kind"])
	}

	fmt.Println("\n================================================")
	if failed > 0 {
		fmt.Printf("❌ %d checks failed\n", failed)
		os.Exit(1)
	}
	fmt.Println("✅ All MCP tool calling tests complete!")
	fmt.Println("\n💡 To test interactively, run: go run ./cmd/mcp-client ./chartdeck mcp")
}

// call runs a tool and decodes its structured result into out.
func call(ctx context.Context, session *mcp.ClientSession, name string, args map[string]interface{}, out any) error {
	if args == nil {
		args = map[string]interface{}{}
	}
	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return err
	}
	if res.IsError {
		for _, c := range res.Content {
			if t, ok := c.(*mcp.TextContent); ok {
				return fmt.Errorf("%s: %s", name, t.Text)
			}
		}
		return fmt.Errorf("%s failed", name)
	}
	if out == nil {
		return nil
	}
	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func findServerBinary() string {
	candidates := []string{
		"./chartdeck",
		"../../chartdeck",
	}
	for _, p := range candidates {
		if abs, err := filepath.Abs(p); err == nil {
			if _, err := os.Stat(abs); err == nil {
				return abs
			}
		}
	}
	return ""
}

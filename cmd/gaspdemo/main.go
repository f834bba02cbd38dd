// Command gaspdemo replays a file through gasp.Stream as randomly-sized
// chunks, printing each snapshot as it's produced, the way a real LLM
// response would arrive token-by-token.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"

	"github.com/iantbutler01/gasp"
)

func init() {
	// Put GASP_WANTED_TAGS / GASP_IGNORED_TAGS in .env and this will load them.
	godotenv.Overload()
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Error: reading %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	wanted := splitEnvList(os.Getenv("GASP_WANTED_TAGS"))
	ignored := splitEnvList(os.Getenv("GASP_IGNORED_TAGS"))

	log := hclog.New(&hclog.LoggerOptions{
		Name:   "gaspdemo",
		Output: os.Stderr,
		Level:  hclog.LevelFromString(os.Getenv("GASP_LOG_LEVEL")),
	})

	stream := gasp.New(wanted, ignored).WithLogger(log)
	if trace := os.Getenv("GASP_DEBUG_TRACE"); trace != "" {
		stream = stream.WithDebugTrace(trace)
	}

	for _, chunk := range randomChunks(string(data), 1, 32) {
		snapshot, err := stream.Step(chunk)
		if err != nil {
			fmt.Printf("\nparse error: %v\n", err)
			os.Exit(1)
		}
		if snapshot == nil {
			continue
		}
		out, err := gasp.Marshal(*snapshot)
		if err != nil {
			fmt.Printf("\nmarshal error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\r%s", out)
	}

	fmt.Println()
	if !stream.IsDone() {
		fmt.Println("(stream ended without a closing tag)")
	}
}

func splitEnvList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// randomChunks splits text into pieces sized randomly within [minSize,
// maxSize], mirroring the chunk_sz 1..32 property used against the
// reference implementation this pipeline is modeled on.
func randomChunks(text string, minSize, maxSize int) []string {
	var chunks []string
	for i := 0; i < len(text); {
		size := minSize
		if maxSize > minSize {
			size += rand.Intn(maxSize - minSize + 1)
		}
		end := i + size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[i:end])
		i = end
	}
	return chunks
}

func printUsage() {
	fmt.Println("Usage: gaspdemo <file>")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  GASP_WANTED_TAGS  - comma-separated tag names to capture (default: all)")
	fmt.Println("  GASP_IGNORED_TAGS - comma-separated tag names to suppress")
	fmt.Println("  GASP_LOG_LEVEL    - hclog level (trace, debug, info, warn, error)")
	fmt.Println("  GASP_DEBUG_TRACE  - path to write a YAML trace of every step")
	fmt.Println()
	fmt.Println("Environment variables can be set directly or loaded from a .env file.")
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pstuifzand/tui-listproxy/internal/model"
	"github.com/pstuifzand/tui-listproxy/internal/storage"
)

func main() {
	numEntries := flag.Int("entries", 1000, "Number of entries to generate")
	output := flag.String("output", "large_test.json", "Output file path")
	title := flag.String("title", "Generated entries", "Title of the entry list")
	flag.Parse()

	if *numEntries < 0 {
		fmt.Fprintf(os.Stderr, "entries must not be negative\n")
		os.Exit(1)
	}

	list := generateEntries(*title, *numEntries)

	if err := storage.NewJSONStore(*output).Save(list); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save entries: %v\n", err)
		os.Exit(1)
	}

	info, err := os.Stat(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to stat output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d entries\n", list.Len())
	fmt.Printf("Saved to: %s\n", *output)
	fmt.Printf("File size: %.2f MB\n", float64(info.Size())/(1024*1024))
}

func generateEntries(title string, count int) *model.EntryList {
	list := model.NewEntryList(title)
	for i := 0; i < count; i++ {
		list.Add(generateUniqueText(i))
	}
	return list
}

func generateUniqueText(index int) string {
	categories := []string{
		"Task", "Note", "Idea", "Bug", "Feature", "Enhancement",
		"Documentation", "Refactor", "Test", "Optimization",
		"Research", "Design", "Implementation", "Review",
	}

	category := categories[index%len(categories)]
	return fmt.Sprintf("%s #%d - %s", category, index,
		generateDescription(index))
}

func generateDescription(index int) string {
	descriptions := []string{
		"Core functionality",
		"User interface",
		"Performance improvement",
		"Bug fix",
		"New capability",
		"API integration",
		"Data validation",
		"Error handling",
		"Caching layer",
		"Database schema",
		"Authentication",
		"Configuration",
		"Logging system",
		"Monitoring",
		"Security audit",
	}

	return descriptions[index%len(descriptions)]
}

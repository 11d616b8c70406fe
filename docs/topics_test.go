package docs

import (
	"bufio"
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// commands the shell understands, see package cmd.
var commands = []string{"ls", "sel", "new", "add", "deactive", "reactive", "tx", "topic", "help", "quit", "exit"}

func TestTopicsAreListedInReadme(t *testing.T) {
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	slices.Sort(topicsInReadme)
	if !slices.Equal(all, topicsInReadme) {
		t.Errorf("readme.md lists %v, embedded topics are %v", topicsInReadme, all)
	}
}

func TestGetTopic(t *testing.T) {
	if _, err := GetTopic("nope"); err == nil {
		t.Error("GetTopic(nope) must fail")
	}
	all, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, heading := range []string{"# Accounts", "# Transactions"} {
		if !strings.Contains(all, heading) {
			t.Errorf("GetTopic(*) is missing %q", heading)
		}
	}
}

// TestTopicStructure parses every topic and checks it starts with a level 1
// heading and that its code blocks only use known commands.
func TestTopicStructure(t *testing.T) {
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range append(topics, "readme") {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatal(err)
			}
			source := []byte(content)
			doc := goldmark.DefaultParser().Parse(text.NewReader(source))

			first, ok := doc.FirstChild().(*ast.Heading)
			if !ok || first.Level != 1 {
				t.Errorf("topic %q must start with a level 1 heading", topic)
			}

			err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				block, ok := n.(*ast.FencedCodeBlock)
				if !entering || !ok || string(block.Language(source)) != "jnab" {
					return ast.WalkContinue, nil
				}
				lines := block.Lines()
				for i := 0; i < lines.Len(); i++ {
					line := lines.At(i)
					fields := strings.Fields(string(line.Value(source)))
					if len(fields) > 0 && !slices.Contains(commands, fields[0]) {
						t.Errorf("topic %q uses unknown command %q", topic, fields[0])
					}
				}
				return ast.WalkContinue, nil
			})
			if err != nil {
				t.Fatal(err)
			}
		})
	}
}

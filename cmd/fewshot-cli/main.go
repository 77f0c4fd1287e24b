package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-fewshot/pkg/persist"
	"github.com/goliatone/go-fewshot/pkg/prompt"
	"github.com/goliatone/go-fewshot/pkg/prompt/pongo"
	"github.com/goliatone/go-fewshot/pkg/shot"
)

func main() {
	configPath := flag.String("config", "", "codec configuration file (.json, .yaml)")
	templatePath := flag.String("template", "", "prompt template file")
	dataPath := flag.String("data", "", "JSON array of example records")
	queryJSON := flag.String("query", "", "query record as JSON")
	contextJSON := flag.String("context", "", "extra template context as JSON")
	resultPath := flag.String("result", "", "model output to parse back into a record")
	ask := flag.Bool("ask", false, "collect query field values interactively")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	if *configPath == "" {
		log.Fatalf("missing -config")
	}
	formatter := loadFormatter(*configPath)

	if *resultPath != "" {
		text, err := os.ReadFile(*resultPath)
		if err != nil {
			log.Fatalf("read result: %v", err)
		}
		record, err := formatter.ParseResult(string(text))
		if err != nil {
			log.Fatalf("parse result: %v", err)
		}
		encoded, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			log.Fatalf("encode record: %v", err)
		}
		write(*output, append(encoded, '\n'))
		return
	}

	if *templatePath == "" {
		log.Fatalf("missing -template")
	}
	templateText, err := os.ReadFile(*templatePath)
	if err != nil {
		log.Fatalf("read template: %v", err)
	}

	renderer, err := pongo.New()
	if err != nil {
		log.Fatalf("create renderer: %v", err)
	}
	engine, err := prompt.New(renderer, string(templateText), formatter)
	if err != nil {
		log.Fatalf("create engine: %v", err)
	}

	var examples []shot.Record
	if *dataPath != "" {
		data, err := os.ReadFile(*dataPath)
		if err != nil {
			log.Fatalf("read data: %v", err)
		}
		if err := json.Unmarshal(data, &examples); err != nil {
			log.Fatalf("decode data: %v", err)
		}
	}

	query := shot.Record{}
	if *queryJSON != "" {
		if err := json.Unmarshal([]byte(*queryJSON), &query); err != nil {
			log.Fatalf("decode query: %v", err)
		}
	}
	if *ask {
		query = askQuery(formatter, query)
	}

	context := map[string]any{}
	if *contextJSON != "" {
		if err := json.Unmarshal([]byte(*contextJSON), &context); err != nil {
			log.Fatalf("decode context: %v", err)
		}
	}

	rendered, err := engine.GeneratePrompt(context, examples, query)
	if err != nil {
		log.Fatalf("generate prompt: %v", err)
	}
	write(*output, []byte(rendered))
}

// loadFormatter reads a persisted configuration tree and extracts a block
// formatter from whichever shape it holds.
func loadFormatter(path string) *shot.Formatter {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read config: %v", err)
	}

	var value any
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		value, err = persist.UnmarshalYAML(data)
	} else {
		value, err = persist.UnmarshalJSON(data)
	}
	if err != nil {
		log.Fatalf("decode config: %v", err)
	}

	switch v := value.(type) {
	case *shot.Formatter:
		return v
	case *shot.Stream:
		return v.Formatter()
	case shot.Assignment:
		formatter, err := shot.NewFormatter(v...)
		if err != nil {
			log.Fatalf("build formatter: %v", err)
		}
		return formatter
	default:
		log.Fatalf("config holds %T, want a formatter, stream, or assignment", value)
		return nil
	}
}

// askQuery prompts for each assigned field in order, stopping at the first
// blank answer so the remaining fields stay open for the model to complete.
func askQuery(formatter *shot.Formatter, query shot.Record) shot.Record {
	for _, field := range formatter.Assignment().Fields() {
		if _, ok := query[field]; ok {
			continue
		}
		var answer string
		input := &survey.Input{Message: shot.Header(field)}
		if err := survey.AskOne(input, &answer); err != nil {
			log.Fatalf("prompt for %q: %v", field, err)
		}
		if strings.TrimSpace(answer) == "" {
			break
		}
		query[field] = answer
	}
	return query
}

func write(path string, data []byte) {
	if path == "" {
		fmt.Print(string(data))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("write output: %v", err)
	}
}

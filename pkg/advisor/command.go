package advisor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/caddr/pkg/routine"
)

// DefaultTimeout bounds a single advisor call.
const DefaultTimeout = 60 * time.Second

// Request is written as JSON to the advisor command's stdin.
type Request struct {
	Kind   string          `json:"kind"`
	Prompt string          `json:"prompt"`
	Schema json.RawMessage `json:"schema"`
	// Image is base64 JPEG data, set for image requests.
	Image string `json:"image,omitempty"`
}

// Runner executes the advisor program with stdin and returns its stdout.
type Runner func(ctx context.Context, argv []string, stdin []byte) ([]byte, error)

// Command delegates prompts to an external program that replies with JSON on
// stdout. Replies are checked against the expected shape before use.
type Command struct {
	Argv    []string
	Timeout time.Duration
	Log     *log.Logger
	// Run defaults to executing Argv.
	Run Runner
}

var _ Advisor = (*Command)(nil)

// NewCommand returns an advisor for argv, or Nop when argv is empty.
func NewCommand(argv []string, logger *log.Logger) Advisor {
	if len(argv) == 0 {
		return Nop{}
	}
	return &Command{Argv: argv, Timeout: DefaultTimeout, Log: logger}
}

func (c *Command) Advice(ctx context.Context, blocks []routine.Block, performance int) *Advice {
	var out Advice
	if !c.ask(ctx, "advice", advicePrompt(blocks, performance), nil, adviceSchemaURL, &out) {
		return nil
	}
	return &out
}

func (c *Command) Review(ctx context.Context, completed []string, performance int, reflection string) *routine.Feedback {
	var out routine.Feedback
	if !c.ask(ctx, "review", reviewPrompt(completed, performance, reflection), nil, reviewSchemaURL, &out) {
		return nil
	}
	return &out
}

func (c *Command) RoutineFromGoal(ctx context.Context, goal string) []routine.Outline {
	var out []routine.Outline
	if !c.ask(ctx, "goal", goalPrompt(goal), nil, outlineSchemaURL, &out) {
		return nil
	}
	return out
}

func (c *Command) RoutineFromImage(ctx context.Context, image []byte) []routine.Outline {
	var out []routine.Outline
	if !c.ask(ctx, "image", imagePrompt, image, outlineSchemaURL, &out) {
		return nil
	}
	return out
}

// ask runs one request and decodes the validated reply into out.
func (c *Command) ask(ctx context.Context, kind, prompt string, image []byte, schemaURL string, out any) bool {
	if err := c.do(ctx, kind, prompt, image, schemaURL, out); err != nil {
		if c.Log != nil {
			c.Log.Warn("advisor unavailable", "kind", kind, "err", err)
		}
		return false
	}
	return true
}

func (c *Command) do(ctx context.Context, kind, prompt string, image []byte, schemaURL string, out any) error {
	req := Request{Kind: kind, Prompt: prompt, Schema: json.RawMessage(schemaDoc(schemaURL))}
	if len(image) > 0 {
		req.Image = base64.StdEncoding.EncodeToString(image)
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	run := c.Run
	if run == nil {
		run = execRunner
	}
	reply, err := run(ctx, c.Argv, payload)
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(reply, &doc); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	schema, err := schemaFor(schemaURL)
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("unexpected reply: %w", err)
	}
	if err := json.Unmarshal(reply, out); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	return nil
}

func execRunner(ctx context.Context, argv []string, stdin []byte) ([]byte, error) {
	if len(argv) == 0 {
		return nil, errors.New("advisor command not configured")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("run %s: %w: %s", argv[0], err, bytes.TrimSpace(stderr.Bytes()))
		}
		return nil, fmt.Errorf("run %s: %w", argv[0], err)
	}
	return stdout.Bytes(), nil
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

const defaultConfigName = ".ktxbake.yaml"

// job is one batch entry: the target command name plus its flag struct,
// reusing the same structs the standalone subcommands parse, exactly as the
// teacher's CmdBuild reuses CmdPack for both CLI flags and YAML.
type job struct {
	Name    string     `yaml:"name"`
	Command string     `yaml:"command"` // "rgba-u8", "rgba-f32", "bc7", "bc7-srgb"
	RGBAU8  CmdRGBAU8  `yaml:"rgba_u8"`
	RGBAF32 CmdRGBAF32 `yaml:"rgba_f32"`
	BC7     CmdBC7     `yaml:"bc7"`
	BC7SRGB CmdBC7SRGB `yaml:"bc7_srgb"`
}

// CmdBuild runs a batch of bake jobs from a YAML config file.
type CmdBuild struct {
	Args struct {
		Path string `positional-arg-name:"path" description:"Path to config file or directory (default: ./.ktxbake.yaml)"`
	} `positional-args:"yes"`

	Only []string `short:"p" long:"project" description:"Build only selected project names (repeatable)"`
}

// Execute runs the build command.
func (c *CmdBuild) Execute(args []string) error {
	configPath, err := resolveConfigPath(c.Args.Path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var doc struct {
		Jobs []job `yaml:"jobs"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if len(doc.Jobs) == 0 {
		return fmt.Errorf("no jobs found in %q", configPath)
	}

	selected := filterJobs(doc.Jobs, c.Only)
	if len(selected) == 0 {
		return fmt.Errorf("no jobs selected")
	}

	baseDir := filepath.Dir(configPath)
	for i := range selected {
		if err := defaults.Set(&selected[i]); err != nil {
			return fmt.Errorf("apply defaults: %w", err)
		}
		if err := runJob(&selected[i], baseDir); err != nil {
			return fmt.Errorf("job %q: %w", selected[i].Name, err)
		}
	}

	return nil
}

func runJob(j *job, baseDir string) error {
	switch j.Command {
	case "rgba-u8":
		j.RGBAU8.Args.Input = resolveRelativePath(baseDir, j.RGBAU8.Args.Input)
		j.RGBAU8.Args.Output = resolveRelativePath(baseDir, j.RGBAU8.Args.Output)
		return j.RGBAU8.Execute(nil)
	case "rgba-f32":
		j.RGBAF32.Args.Input = resolveRelativePath(baseDir, j.RGBAF32.Args.Input)
		j.RGBAF32.Args.Output = resolveRelativePath(baseDir, j.RGBAF32.Args.Output)
		return j.RGBAF32.Execute(nil)
	case "bc7":
		j.BC7.Args.Input = resolveRelativePath(baseDir, j.BC7.Args.Input)
		j.BC7.Args.Output = resolveRelativePath(baseDir, j.BC7.Args.Output)
		return j.BC7.Execute(nil)
	case "bc7-srgb":
		j.BC7SRGB.Args.Input = resolveRelativePath(baseDir, j.BC7SRGB.Args.Input)
		j.BC7SRGB.Args.Output = resolveRelativePath(baseDir, j.BC7SRGB.Args.Output)
		return j.BC7SRGB.Execute(nil)
	default:
		return fmt.Errorf("unknown job command %q", j.Command)
	}
}

func filterJobs(jobs []job, only []string) []job {
	if len(only) == 0 {
		return jobs
	}
	onlySet := make(map[string]struct{}, len(only))
	for _, name := range only {
		name = strings.TrimSpace(name)
		if name != "" {
			onlySet[name] = struct{}{}
		}
	}
	var out []job
	for _, j := range jobs {
		if _, ok := onlySet[j.Name]; ok {
			out = append(out, j)
		}
	}
	return out
}

func resolveConfigPath(arg string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get cwd: %w", err)
		}
		path := filepath.Join(cwd, defaultConfigName)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config not found: %s", path)
		}
		return path, nil
	}

	info, err := os.Stat(arg)
	if err != nil {
		return "", fmt.Errorf("config path: %w", err)
	}
	if info.IsDir() {
		path := filepath.Join(arg, defaultConfigName)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config not found: %s", path)
		}
		return path, nil
	}
	return arg, nil
}

func resolveRelativePath(baseDir, path string) string {
	if strings.TrimSpace(path) == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	specs "github.com/opencontainers/image-spec/specs-go/v1"
)

// Submitted code never runs in the serving process. Each run gets a throwaway
// container with no network, a memory/CPU ceiling and a wall-clock deadline,
// and captured output is truncated at a byte cap.

type SandboxLanguage string

const (
	LangJavaScript SandboxLanguage = "javascript"
	LangPython     SandboxLanguage = "python"
)

// SandboxLimits bound a single execution
type SandboxLimits struct {
	WallTime       time.Duration
	MemoryBytes    int64
	NanoCPUs       int64
	MaxOutputBytes int
}

// ExecResult is what a finished (or failed) run reports back
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
	Err      string
}

var (
	ErrSandboxUnavailable  = errors.New("sandbox unavailable")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

type dockerClient interface {
	ImageInspectWithRaw(ctx context.Context, image string) (types.ImageInspect, []byte, error)
	ImagePull(ctx context.Context, ref string, options types.ImagePullOptions) (io.ReadCloser, error)
	ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, platform *specs.Platform, containerName string) (container.ContainerCreateCreatedBody, error)
	ContainerRemove(ctx context.Context, containerID string, options types.ContainerRemoveOptions) error
	ContainerStart(ctx context.Context, containerID string, options types.ContainerStartOptions) error
	ContainerExecCreate(ctx context.Context, container string, config types.ExecConfig) (types.IDResponse, error)
	ContainerExecAttach(ctx context.Context, execID string, config types.ExecStartCheck) (types.HijackedResponse, error)
	ContainerExecStart(ctx context.Context, execID string, config types.ExecStartCheck) error
	ContainerExecInspect(ctx context.Context, execID string) (types.ContainerExecInspect, error)
}

var newDockerClient = func() (dockerClient, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}

// langImage maps a language tag to its container image, source file name and run command
func langImage(lang SandboxLanguage) (image, fileName string, runCmd []string, err error) {
	switch lang {
	case LangJavaScript:
		return "node:20-slim", "main.js", []string{"node", "main.js"}, nil
	case LangPython:
		return "python:3.11-slim", "main.py", []string{"python3", "main.py"}, nil
	default:
		return "", "", nil, ErrUnsupportedLanguage
	}
}

// RunInSandbox executes code for the given language inside an isolated container
func RunInSandbox(ctx context.Context, lang SandboxLanguage, code string, limits SandboxLimits) (ExecResult, error) {
	image, fileName, runCmd, err := langImage(lang)
	if err != nil {
		return ExecResult{}, err
	}

	cli, err := newDockerClient()
	if err != nil {
		return ExecResult{}, ErrSandboxUnavailable
	}
	if closer, ok := cli.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	limits = applyLimitDefaults(limits)

	runCtx, cancel := context.WithTimeout(ctx, limits.WallTime)
	defer cancel()

	var stdout, stderr cappedBuffer
	stdout.cap = limits.MaxOutputBytes
	stderr.cap = limits.MaxOutputBytes

	exitCode, err := runContainer(runCtx, cli, image, fileName, code, runCmd, limits, &stdout, &stderr)

	result := ExecResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
	if runCtx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		result.Err = "execution timed out"
		return result, nil
	}
	if err != nil {
		if errors.Is(err, ErrSandboxUnavailable) {
			return ExecResult{}, err
		}
		result.Err = "sandbox error"
	}
	return result, nil
}

func applyLimitDefaults(limits SandboxLimits) SandboxLimits {
	if limits.WallTime <= 0 {
		limits.WallTime = 10 * time.Second
	}
	if limits.MemoryBytes == 0 {
		limits.MemoryBytes = 256 * 1024 * 1024
	}
	if limits.NanoCPUs == 0 {
		limits.NanoCPUs = 1_000_000_000
	}
	if limits.MaxOutputBytes == 0 {
		limits.MaxOutputBytes = 64 * 1024
	}
	return limits
}

func runContainer(ctx context.Context, cli dockerClient, image, fileName, code string, runCmd []string, limits SandboxLimits, stdout, stderr io.Writer) (int, error) {
	if err := ensureImage(ctx, cli, image); err != nil {
		return -1, err
	}

	hostCfg := &container.HostConfig{
		NetworkMode: "none",
		Resources: container.Resources{
			Memory:   limits.MemoryBytes,
			NanoCPUs: limits.NanoCPUs,
		},
		SecurityOpt: []string{"no-new-privileges"},
	}
	conf := &container.Config{
		Image:      image,
		Cmd:        []string{"/bin/sh", "-c", "sleep infinity"},
		WorkingDir: "/workspace",
	}

	create, err := cli.ContainerCreate(ctx, conf, hostCfg, nil, nil, "")
	if err != nil {
		return -1, translateDockerErr(err)
	}
	cid := create.ID
	defer func() {
		_ = cli.ContainerRemove(context.Background(), cid, types.ContainerRemoveOptions{Force: true})
	}()

	if err := cli.ContainerStart(ctx, cid, types.ContainerStartOptions{}); err != nil {
		return -1, translateDockerErr(err)
	}

	if err := writeSource(ctx, cli, cid, fileName, []byte(code)); err != nil {
		return -1, translateDockerErr(err)
	}

	execResp, err := cli.ContainerExecCreate(ctx, cid, types.ExecConfig{
		Cmd:          runCmd,
		WorkingDir:   "/workspace",
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return -1, translateDockerErr(err)
	}
	attach, err := cli.ContainerExecAttach(ctx, execResp.ID, types.ExecStartCheck{})
	if err != nil {
		return -1, translateDockerErr(err)
	}
	if err := cli.ContainerExecStart(ctx, execResp.ID, types.ExecStartCheck{}); err != nil {
		attach.Close()
		return -1, translateDockerErr(err)
	}

	if err := pumpOutput(ctx, attach, stdout, stderr); err != nil {
		return -1, err
	}

	inspect, err := cli.ContainerExecInspect(ctx, execResp.ID)
	if err != nil {
		return -1, translateDockerErr(err)
	}
	return inspect.ExitCode, nil
}

// pumpOutput drains the attach stream until it closes or the context expires.
// The exec stream never closes while the command is still running, so on
// expiry the hijacked connection is closed out from under the copier instead
// of waiting on it; the caller's deferred force-remove tears the container
// down.
func pumpOutput(ctx context.Context, attach types.HijackedResponse, stdout, stderr io.Writer) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = stdcopy.StdCopy(stdout, stderr, attach.Reader)
	}()

	select {
	case <-done:
		attach.Close()
		return nil
	case <-ctx.Done():
		attach.Close()
		return ctx.Err()
	}
}

func ensureImage(ctx context.Context, cli dockerClient, image string) error {
	_, _, err := cli.ImageInspectWithRaw(ctx, image)
	if err == nil {
		return nil
	}
	if !client.IsErrNotFound(err) {
		return translateDockerErr(err)
	}

	pullCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	reader, err := cli.ImagePull(pullCtx, image, types.ImagePullOptions{})
	if err != nil {
		return translateDockerErr(err)
	}
	defer reader.Close()
	_, _ = io.Copy(io.Discard, reader)
	return nil
}

// writeSource drops the submitted code into the container workspace via an
// exec with attached stdin.
func writeSource(ctx context.Context, cli dockerClient, cid, fileName string, code []byte) error {
	execResp, err := cli.ContainerExecCreate(ctx, cid, types.ExecConfig{
		Cmd:          []string{"/bin/sh", "-c", fmt.Sprintf("cat > %s", shellQuote("/workspace/"+fileName))},
		WorkingDir:   "/workspace",
		AttachStdout: true,
		AttachStderr: true,
		AttachStdin:  true,
	})
	if err != nil {
		return err
	}
	attach, err := cli.ContainerExecAttach(ctx, execResp.ID, types.ExecStartCheck{})
	if err != nil {
		return err
	}
	defer attach.Close()
	if err := cli.ContainerExecStart(ctx, execResp.ID, types.ExecStartCheck{}); err != nil {
		return err
	}
	if len(code) > 0 {
		if _, err := attach.Conn.Write(code); err != nil {
			return err
		}
	}
	if closer, ok := attach.Conn.(interface{ CloseWrite() error }); ok {
		_ = closer.CloseWrite()
	}
	if err := pumpOutput(ctx, attach, io.Discard, io.Discard); err != nil {
		return err
	}

	inspect, err := cli.ContainerExecInspect(ctx, execResp.ID)
	if err != nil {
		return err
	}
	if inspect.ExitCode != 0 {
		return fmt.Errorf("write %s: exit=%d", fileName, inspect.ExitCode)
	}
	return nil
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

func translateDockerErr(err error) error {
	if err == nil {
		return nil
	}
	if client.IsErrConnectionFailed(err) {
		return ErrSandboxUnavailable
	}
	return err
}

// cappedBuffer collects output up to cap bytes and drops the rest
type cappedBuffer struct {
	cap       int
	buf       strings.Builder
	truncated bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	n := len(p)
	remaining := b.cap - b.buf.Len()
	if remaining > 0 {
		if len(p) > remaining {
			p = p[:remaining]
			b.truncated = true
		}
		b.buf.Write(p)
	} else if n > 0 {
		b.truncated = true
	}
	return n, nil
}

func (b *cappedBuffer) String() string {
	if b.truncated {
		return b.buf.String() + "\n[output truncated]"
	}
	return b.buf.String()
}

package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// MediaPipeDetector implements Detector using a Python MediaPipe subprocess
// that runs hand tracking and selfie segmentation on each frame.
type MediaPipeDetector struct {
	config    Config
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
	lastUsed  time.Time
	idleTimer *time.Timer
}

// NewMediaPipeDetector creates a new MediaPipe detector.
// The Python process is started lazily on first detection.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	scriptPath := findServiceScript()
	if scriptPath == "" {
		return nil, fmt.Errorf("makeover_service.py not found")
	}

	return &MediaPipeDetector{
		config: config,
	}, nil
}

// Detect sends a frame to the service and parses its observation.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) (Observation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureStarted(); err != nil {
		return Observation{}, err
	}

	// Encode frame as JPEG
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return Observation{}, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()

	// Write length (4 bytes big-endian) + data
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := d.stdin.Write(length); err != nil {
		return Observation{}, fmt.Errorf("write length: %w", err)
	}
	if _, err := d.stdin.Write(data); err != nil {
		return Observation{}, fmt.Errorf("write data: %w", err)
	}

	// Read JSON header line, then the raw mask payload it announces.
	line, err := d.stdout.ReadString('\n')
	if err != nil {
		return Observation{}, fmt.Errorf("read response: %w", err)
	}

	obs, maskLen, err := parseObservation([]byte(line), frame.Cols(), frame.Rows())
	if err != nil {
		return Observation{}, err
	}

	if maskLen > 0 {
		maskData := make([]byte, maskLen)
		if _, err := io.ReadFull(d.stdout, maskData); err != nil {
			return Observation{}, fmt.Errorf("read mask: %w", err)
		}
		mask, err := gocv.IMDecode(maskData, gocv.IMReadGrayScale)
		if err != nil {
			return Observation{}, fmt.Errorf("decode mask: %w", err)
		}
		obs.Mask = &mask
	}

	d.lastUsed = time.Now()
	d.resetIdleTimer()

	return obs, nil
}

// Close shuts down the Python process.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shutdown()
}

func (d *MediaPipeDetector) ensureStarted() error {
	if d.started {
		return nil
	}

	scriptPath := findServiceScript()
	if scriptPath == "" {
		return fmt.Errorf("makeover_service.py not found")
	}

	// Use virtual environment Python if available
	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	d.cmd = exec.Command(pythonPath, scriptPath,
		fmt.Sprintf("--max-hands=%d", d.config.MaxHands),
		fmt.Sprintf("--min-confidence=%g", d.config.MinConfidence),
		fmt.Sprintf("--min-tracking=%g", d.config.MinTrackingConf),
	)

	stdin, err := d.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	// Capture stderr for debugging
	d.cmd.Stderr = os.Stderr

	if err := d.cmd.Start(); err != nil {
		return fmt.Errorf("start makeover service: %w", err)
	}

	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	d.started = true
	d.lastUsed = time.Now()

	return nil
}

func (d *MediaPipeDetector) shutdown() error {
	if !d.started {
		return nil
	}

	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}

	if d.stdin != nil {
		d.stdin.Close()
	}

	err := d.cmd.Wait()
	d.started = false
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil

	return err
}

func (d *MediaPipeDetector) resetIdleTimer() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}
	d.idleTimer = time.AfterFunc(30*time.Second, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.shutdown()
	})
}

// jsonObservation is the header line emitted by the Python service. The
// fingertip comes back in normalized frame coordinates; MaskLen announces how
// many raw PNG bytes follow the newline.
type jsonObservation struct {
	Finger *struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"finger"`
	Face    bool `json:"face"`
	MaskLen int  `json:"mask_len"`
}

// parseObservation decodes a header line, converting the normalized fingertip
// into pixel coordinates for the given frame size. Fingertips outside the
// frame are dropped rather than clamped.
func parseObservation(line []byte, frameW, frameH int) (Observation, int, error) {
	var raw jsonObservation
	if err := json.Unmarshal(line, &raw); err != nil {
		return Observation{}, 0, fmt.Errorf("parse response: %w", err)
	}

	obs := Observation{FacePresent: raw.Face}
	if raw.Finger != nil {
		p := image.Pt(
			int(raw.Finger.X*float64(frameW)),
			int(raw.Finger.Y*float64(frameH)),
		)
		if p.In(image.Rect(0, 0, frameW, frameH)) {
			obs.Finger = &p
		}
	}

	return obs, raw.MaskLen, nil
}

func findServiceScript() string {
	// Get executable directory
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/makeover_service.py",
		"../scripts/makeover_service.py",
		filepath.Join(execDir, "scripts/makeover_service.py"),
		filepath.Join(os.Getenv("HOME"), ".makeover/scripts/makeover_service.py"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// findVenvPython looks for a Python interpreter in a virtual environment.
// It checks for venv/bin/python relative to the project directory.
func findVenvPython() string {
	// Get executable directory to find project root
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		"../../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".makeover/venv/bin/python"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// rigtool is a CLI utility for inspecting skeletons and evaluating animation clips.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/rigeval/internal/config"
	"github.com/Faultbox/rigeval/internal/engine/animation"
	"github.com/Faultbox/rigeval/internal/logger"
	"github.com/Faultbox/rigeval/pkg/formats"
	"github.com/Faultbox/rigeval/pkg/math"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		cmdInfo(args)
	case "eval":
		cmdEval(cfg, args)
	case "camera":
		cmdCamera(cfg, args)
	case "lighting":
		cmdLighting(cfg, args)
	case "validate":
		cmdValidate(args)
	case "config":
		cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`rigtool - skeletal animation evaluator

Usage:
  rigtool [global options] <command> [options]

Global options:
  -config <file>     Config file (default: ./rigeval.yaml or user config dir)
  -debug             Enable debug logging
  -max-bones <n>     Bone slots per transform set
  -loop / -no-loop   Wrap frames into each clip's length, or clamp them
  -no-constraints    Skip helper bone constraints
  -log-file <file>   Write logs to file
  -log-format <fmt>  Log format: console or json

Commands:
  info <skel.yaml>                                Show the bone hierarchy
  eval [-anim a.yaml]... [-hlpb h.yaml] [-swing s.yaml] [-frame f | -time s] [-yaml] <skel.yaml>
                                                  Evaluate clips and print bone transforms
  camera [-frame f] <anim.yaml>                   Evaluate a camera clip
  lighting [-frame f] [<anim.yaml>]               Evaluate a stage lighting clip (training lighting without one)
  validate [-anim a.yaml]... [-hlpb h.yaml] <skel.yaml>
                                                  Report broken parents and missing references
  config [-save <file>]                           Print the effective config, or write it to a file

Examples:
  rigtool info model.nusktb.yaml
  rigtool eval -anim wait.nuanmb.yaml -frame 12.5 model.nusktb.yaml
  rigtool -no-loop eval -anim a.yaml -anim b.yaml -hlpb model.nuhlpb.yaml model.nusktb.yaml`)
}

// stringList collects a repeated string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func loadSkel(path string) *formats.Skel {
	skel, err := formats.ParseSkelFile(path)
	if err != nil {
		fatalf("Error: %v", err)
	}
	return skel
}

func loadAnims(paths []string) []*formats.Anim {
	anims := make([]*formats.Anim, 0, len(paths))
	for _, path := range paths {
		anim, err := formats.ParseAnimFile(path)
		if err != nil {
			fatalf("Error: %v", err)
		}
		anims = append(anims, anim)
	}
	return anims
}

func loadHlpb(path string) *formats.Hlpb {
	if path == "" {
		return nil
	}
	hlpb, err := formats.ParseHlpbFile(path)
	if err != nil {
		fatalf("Error: %v", err)
	}
	return hlpb
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fatalf("Usage: rigtool info <skel.yaml>")
	}

	skel := loadSkel(args[0])

	fmt.Printf("Skeleton: %s\n", args[0])
	fmt.Printf("Version:  %s\n", skel.Version)
	fmt.Printf("Bones:    %d\n", len(skel.Bones))
	fmt.Printf("Roots:    %d\n", len(skel.RootBones()))
	fmt.Println()

	for _, root := range skel.RootBones() {
		printTree(skel, root, 0, make(map[int]bool))
	}

	if err := skel.Validate(); err != nil {
		fmt.Println()
		fmt.Printf("Problems (%d):\n", len(multierr.Errors(err)))
		for _, e := range multierr.Errors(err) {
			fmt.Printf("  %v\n", e)
		}
	}
}

func printTree(skel *formats.Skel, i, depth int, visited map[int]bool) {
	if visited[i] {
		return
	}
	visited[i] = true

	b := &skel.Bones[i]
	pos := b.Transform.Translation()
	line := fmt.Sprintf("%s%s", strings.Repeat("  ", depth), b.Name)
	fmt.Printf("%-40s [%3d] pos=(%.3f, %.3f, %.3f)", line, i, pos.X, pos.Y, pos.Z)
	if b.BillboardType != formats.BillboardDisabled {
		fmt.Printf(" billboard=%s", b.BillboardType)
	}
	fmt.Println()

	for _, child := range skel.GetChildBones(i) {
		printTree(skel, child, depth+1, visited)
	}
}

// boneOutput is the YAML shape of an evaluated bone.
type boneOutput struct {
	Name           string        `yaml:"name"`
	Index          int           `yaml:"index"`
	World          [4][4]float32 `yaml:"world"`
	SkinningOffset [4][4]float32 `yaml:"skinning_offset"`
	WorldPosition  [3]float32    `yaml:"world_position"`
	Helper         bool          `yaml:"helper,omitempty"`
}

func cmdEval(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	var animPaths stringList
	fs.Var(&animPaths, "anim", "Animation file (repeatable, applied in order)")
	hlpbPath := fs.String("hlpb", "", "Helper bone constraints file")
	swingPath := fs.String("swing", "", "Swing collision shapes file (text output only)")
	frame := fs.Float64("frame", 0, "Frame to evaluate")
	seconds := fs.Float64("time", -1, "Time in seconds, converted with the configured frame rate")
	asYAML := fs.Bool("yaml", false, "Print full matrices as YAML")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fatalf("Usage: rigtool eval [-anim a.yaml]... [-hlpb h.yaml] [-frame f] <skel.yaml>")
	}

	skel := loadSkel(fs.Arg(0))
	anims := loadAnims(animPaths)
	hlpb := loadHlpb(*hlpbPath)

	f := *frame
	if *seconds >= 0 {
		f = cfg.Animation.FrameAt(*seconds)
	}

	evaluator := animation.NewEvaluator(
		animation.WithCapacity(cfg.Animation.MaxBones),
		animation.WithConstraints(cfg.Animation.ApplyConstraints),
	)
	set, err := evaluator.Evaluate(skel, anims, f, cfg.Animation.Loop, hlpb)
	if err != nil {
		for _, e := range multierr.Errors(err) {
			logger.Warn("evaluation problem", zap.Error(e))
		}
	}

	colors := animation.BoneColors(skel, hlpb)
	if *asYAML {
		out := make([]boneOutput, 0, set.BoneCount())
		for i := 0; i < set.BoneCount(); i++ {
			pos := set.WorldTransforms[i].Translation()
			out = append(out, boneOutput{
				Name:           skel.Bones[i].Name,
				Index:          i,
				World:          formats.RowsFromMatrix(set.WorldTransforms[i]),
				SkinningOffset: formats.RowsFromMatrix(set.SkinningOffsets[i]),
				WorldPosition:  [3]float32{pos.X, pos.Y, pos.Z},
				Helper:         colors[i] == animation.HelperBoneColor,
			})
		}
		data, err := yaml.Marshal(out)
		if err != nil {
			fatalf("Error encoding output: %v", err)
		}
		os.Stdout.Write(data)
	} else {
		fmt.Printf("Frame %.3f (loop=%v, %d clips)\n\n", f, cfg.Animation.Loop, len(anims))
		for i, label := range animation.BoneNamePositions(skel, set) {
			marker := ""
			if colors[i] == animation.HelperBoneColor {
				marker = " (helper)"
			}
			fmt.Printf("  [%3d] %-32s (%.4f, %.4f, %.4f)%s\n",
				i, label.Name, label.Position.X, label.Position.Y, label.Position.Z, marker)
		}
	}

	if *swingPath != "" && !*asYAML {
		swing, serr := formats.ParseSwingFile(*swingPath)
		if serr != nil {
			fatalf("Error: %v", serr)
		}
		printSwingShapes(animation.SwingShapes(swing, set), len(swing.Spheres)+len(swing.Capsules))
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "\n%d problems during evaluation\n", len(multierr.Errors(err)))
		if errors.Is(err, animation.ErrCapacityExceeded) {
			fmt.Fprintf(os.Stderr, "Skeleton has %d bones, only %d were evaluated (use -max-bones)\n",
				len(skel.Bones), set.Capacity())
		}
	}
}

func cmdCamera(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("camera", flag.ExitOnError)
	frame := fs.Float64("frame", 0, "Frame to evaluate")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fatalf("Usage: rigtool camera [-frame f] <anim.yaml>")
	}

	anim := loadAnims([]string{fs.Arg(0)})[0]
	f := animation.LoopFrame(*frame, anim.FinalFrameIndex, cfg.Animation.Loop)

	cam, ok := animation.AnimateCamera(anim, f, animation.CameraDefaults{
		FovY:     cfg.Camera.FovY,
		NearClip: cfg.Camera.NearClip,
		FarClip:  cfg.Camera.FarClip,
	})
	if !ok {
		fatalf("No camera node in %s", fs.Arg(0))
	}

	pos := cam.Position()
	fmt.Printf("Frame:    %.3f\n", f)
	fmt.Printf("Position: (%.4f, %.4f, %.4f)\n", pos.X, pos.Y, pos.Z)
	fmt.Printf("FovY:     %.4f rad\n", cam.FovY)
	fmt.Printf("Clip:     %.4f .. %.4f\n", cam.NearClip, cam.FarClip)
	fmt.Println()
	fmt.Println("View projection:")
	for _, row := range formats.RowsFromMatrix(cam.ViewProjection(cfg.Camera.Aspect)) {
		fmt.Printf("  %10.4f %10.4f %10.4f %10.4f\n", row[0], row[1], row[2], row[3])
	}
}

func printSwingShapes(shapes []animation.SwingShape, total int) {
	fmt.Printf("\nSwing shapes (%d of %d placed):\n", len(shapes), total)
	for _, shape := range shapes {
		pos := shape.Transform.Translation()
		fmt.Printf("  %-32s center=(%.4f, %.4f, %.4f) height=%.4f\n",
			shape.Name, pos.X, pos.Y, pos.Z, shape.Height)
	}
}

func cmdLighting(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("lighting", flag.ExitOnError)
	frame := fs.Float64("frame", 0, "Frame to evaluate")
	fs.Parse(args)

	lighting := animation.TrainingLighting()
	f := *frame
	if fs.NArg() > 0 {
		anim := loadAnims([]string{fs.Arg(0)})[0]
		f = animation.LoopFrame(*frame, anim.FinalFrameIndex, cfg.Animation.Loop)
		lighting = animation.AnimateLighting(anim, f)
	}

	light := lighting.LightChr
	fmt.Printf("Frame:     %.3f\n", f)
	fmt.Printf("Color:     (%.4f, %.4f, %.4f, %.4f)\n", light.Color[0], light.Color[1], light.Color[2], light.Color[3])
	fmt.Printf("Direction: (%.4f, %.4f, %.4f)\n", light.Direction[0], light.Direction[1], light.Direction[2])
	fmt.Println()
	fmt.Println("Light transform:")
	for _, row := range formats.RowsFromMatrix(lighting.LightTransform) {
		fmt.Printf("  %10.4f %10.4f %10.4f %10.4f\n", row[0], row[1], row[2], row[3])
	}

	attrs := lighting.SceneAttributes
	for i, v := range attrs.CustomFloat {
		if v != 0 {
			fmt.Printf("CustomFloat%d = %.4f\n", i, v)
		}
	}
	for i, v := range attrs.CustomBoolean {
		if v {
			fmt.Printf("CustomBoolean%d = true\n", i)
		}
	}
	for i, v := range attrs.CustomVector {
		if v != (math.Vec4{}) {
			fmt.Printf("CustomVector%d = (%.4f, %.4f, %.4f, %.4f)\n", i, v[0], v[1], v[2], v[3])
		}
	}
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var animPaths stringList
	fs.Var(&animPaths, "anim", "Animation file (repeatable)")
	hlpbPath := fs.String("hlpb", "", "Helper bone constraints file")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fatalf("Usage: rigtool validate [-anim a.yaml]... [-hlpb h.yaml] <skel.yaml>")
	}

	skel := loadSkel(fs.Arg(0))
	anims := loadAnims(animPaths)
	hlpb := loadHlpb(*hlpbPath)

	problems := multierr.Errors(skel.Validate())
	for _, name := range missingReferences(skel, anims, hlpb) {
		problems = append(problems, fmt.Errorf("unknown bone %q", name))
	}

	if len(problems) == 0 {
		fmt.Println("OK")
		return
	}
	for _, p := range problems {
		fmt.Println(p)
	}
	os.Exit(1)
}

// missingReferences lists bone names used by clips or constraints that the
// skeleton does not define. The evaluator ignores them.
func missingReferences(skel *formats.Skel, anims []*formats.Anim, hlpb *formats.Hlpb) []string {
	seen := make(map[string]bool)
	var missing []string
	check := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		if skel.BoneIndex(name) < 0 {
			missing = append(missing, name)
		}
	}

	for _, anim := range anims {
		for _, group := range anim.GetGroups(formats.GroupTransform) {
			for _, node := range group.Nodes {
				check(node.Name)
			}
		}
	}
	if hlpb != nil {
		for _, c := range hlpb.AimConstraints {
			check(c.AimBoneName1)
			check(c.TargetBoneName1)
		}
		for _, c := range hlpb.OrientConstraints {
			check(c.SourceBoneName)
			check(c.TargetBoneName)
		}
	}
	return missing
}

func cmdConfig(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	save := fs.String("save", "", "Write the effective config to this file")
	fs.Parse(args)

	if *save != "" {
		if err := cfg.SaveTo(*save); err != nil {
			fatalf("Error: %v", err)
		}
		fmt.Printf("Saved config to %s\n", *save)
		return
	}

	data, err := cfg.Marshal()
	if err != nil {
		fatalf("Error: %v", err)
	}
	os.Stdout.Write(data)
}

// The armkin command exposes the kinematics library on the command line: listing the
// robot registry, computing forward kinematics for a joint configuration, and solving
// inverse kinematics for a target pose.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/mattj23/industrial-robots/kinematics"
	"github.com/mattj23/industrial-robots/robots"
	"github.com/mattj23/industrial-robots/spatialmath"
	"github.com/mattj23/industrial-robots/utils"
)

func main() {
	logger := golog.NewDevelopmentLogger("armkin")
	app := &cli.App{
		Name:  "armkin",
		Usage: "forward and inverse kinematics for six axis industrial arms",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list the robots in the registry",
				Action: listAction,
			},
			{
				Name:      "fk",
				Usage:     "compute the flange pose for a joint configuration",
				ArgsUsage: "<robot> <j1> <j2> <j3> <j4> <j5> <j6>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "radians",
						Usage: "joint angles are given in radians instead of degrees",
					},
				},
				Action: fkAction,
			},
			{
				Name:      "ik",
				Usage:     "solve for all joint configurations reaching a flange pose",
				ArgsUsage: "<robot> <x> <y> <z> <roll> <pitch> <yaw>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "radians",
						Usage: "roll/pitch/yaw are given in radians instead of degrees",
					},
				},
				Action: func(c *cli.Context) error {
					return ikAction(c, logger)
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func listAction(c *cli.Context) error {
	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.AppendHeader(table.Row{"Name", "Structure", "Joint Limits (deg)"})
	for _, name := range robots.Names() {
		model, err := robots.Lookup(name)
		if err != nil {
			return err
		}
		class, err := model.Class()
		if err != nil {
			class = kinematics.ClassGeneric6R
		}
		limits := ""
		for i, limit := range model.DoF() {
			if i > 0 {
				limits += " "
			}
			limits += fmt.Sprintf("[%.0f,%.0f]", utils.RadToDeg(limit.Min), utils.RadToDeg(limit.Max))
		}
		t.AppendRow(table.Row{name, class.String(), limits})
	}
	t.Render()
	return nil
}

func fkAction(c *cli.Context) error {
	model, values, err := parseRobotArgs(c, 6)
	if err != nil {
		return err
	}
	var angles kinematics.JointAngles
	for i, v := range values {
		if c.Bool("radians") {
			angles[i] = v
		} else {
			angles[i] = utils.DegToRad(v)
		}
	}
	pose := model.Transform(angles)
	pt := pose.Point()
	ea := pose.Orientation().EulerAngles()
	fmt.Fprintf(c.App.Writer, "position: %.3f %.3f %.3f\n", pt.X, pt.Y, pt.Z)
	fmt.Fprintf(c.App.Writer, "wpr (deg): %.3f %.3f %.3f\n",
		utils.RadToDeg(ea.Roll), utils.RadToDeg(ea.Pitch), utils.RadToDeg(ea.Yaw))
	return nil
}

func ikAction(c *cli.Context, logger golog.Logger) error {
	model, values, err := parseRobotArgs(c, 6)
	if err != nil {
		return err
	}
	roll, pitch, yaw := values[3], values[4], values[5]
	if !c.Bool("radians") {
		roll = utils.DegToRad(roll)
		pitch = utils.DegToRad(pitch)
		yaw = utils.DegToRad(yaw)
	}
	goal := spatialmath.NewPose(
		r3.Vector{X: values[0], Y: values[1], Z: values[2]},
		&spatialmath.EulerAngles{Roll: roll, Pitch: pitch, Yaw: yaw},
	)

	solver, err := kinematics.NewSolver(model, logger)
	if err != nil {
		return err
	}
	solutions, err := solver.Solve(context.Background(), goal)
	if err != nil {
		return err
	}
	if len(solutions) == 0 {
		fmt.Fprintln(c.App.Writer, "no solutions: target is unreachable")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.AppendHeader(table.Row{"#", "J1", "J2", "J3", "J4", "J5", "J6", "Singular"})
	for i, sol := range solutions {
		row := table.Row{i + 1}
		for _, angle := range sol.Joints {
			row = append(row, fmt.Sprintf("%.3f", utils.RadToDeg(angle)))
		}
		row = append(row, sol.Approximate)
		t.AppendRow(row)
	}
	t.Render()
	return nil
}

// parseRobotArgs reads a robot name followed by n float arguments.
func parseRobotArgs(c *cli.Context, n int) (*kinematics.Model, []float64, error) {
	args := c.Args().Slice()
	if len(args) != n+1 {
		return nil, nil, errors.Errorf("expected a robot name and %d values, got %d arguments", n, len(args))
	}
	model, err := robots.Lookup(args[0])
	if err != nil {
		return nil, nil, err
	}
	values := make([]float64, 0, n)
	for _, arg := range args[1:] {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "parsing %q", arg)
		}
		values = append(values, v)
	}
	return model, values, nil
}

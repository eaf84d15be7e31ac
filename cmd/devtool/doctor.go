package main

import "fmt"

type DoctorCommand struct{}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Description() string {
	return "Diagnose environment issues (deps + db + api)"
}

func (c *DoctorCommand) Run(args []string) error {
	PrintHeader("Running Doctor...")

	hasError := false

	depsCmd := &CheckDepsCommand{}
	if err := depsCmd.Run(nil); err != nil {
		PrintError("Dependencies check failed: %v", err)
		hasError = true
	} else {
		PrintSuccess("Dependencies OK")
	}

	// Single ping, the wait-for-db command is the patient one
	if err := pingDatabase(databaseURL()); err != nil {
		PrintError("Database check failed: %v", err)
		PrintInfo("Start it with: docker compose up -d db")
		hasError = true
	} else {
		PrintSuccess("Database OK")
	}

	// The API may legitimately be down during development, so only warn
	healthCmd := &HealthCheckCommand{}
	if err := healthCmd.Run(nil); err != nil {
		PrintWarning("API not reachable (start it with: make run)")
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}

	PrintSuccess("All systems operational!")
	return nil
}

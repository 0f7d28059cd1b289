package chem

// MolarMassResponse is the JSON response for GET /molar-mass/{formula}.
type MolarMassResponse struct {
	Formula   string `json:"formula"`
	MolarMass string `json:"molar_mass"`
	Units     string `json:"units"`
	SigDigits int    `json:"sig_digits"`
}

// Command is one entry in a POST /run-commands batch.
type Command struct {
	Number     string            `json:"number"`
	Command    string            `json:"command"` // "molar_mass", "flatten"
	Parameters CommandParameters `json:"parameters"`
}

// CommandParameters holds the arguments a command operates on.
type CommandParameters struct {
	Formula string `json:"formula"`
}

// CommandResult records one executed command. Status is "OK" on success and
// "ERR" otherwise, with Result carrying the value or the failure message.
type CommandResult struct {
	Number string `json:"number"`
	Status string `json:"status"`
	Result string `json:"result"`
}

// RunCommandsRequest is the JSON body for POST /run-commands.
type RunCommandsRequest struct {
	Commands []Command `json:"commands"`
}

// RunCommandsResponse is the JSON response for POST /run-commands.
type RunCommandsResponse struct {
	Results []CommandResult `json:"results"`
}

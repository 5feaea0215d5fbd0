package memory

import "quest-client/internal/domain"

// DefaultQuests is the built-in SP1 onboarding catalog used when no database is configured.
func DefaultQuests() []domain.Quest {
	return []domain.Quest{
		{
			ID:           1,
			Title:        "Install Git",
			Description:  "Install Git on your computer so you can use it to download all files needed for sp1",
			Prompts:      []string{"What output do you get when you type 'git --version' in your terminal?"},
			Multiplicity: 1,
		},
		{
			ID:           2,
			Title:        "Install Rust",
			Description:  "Install Rust programming language using rustup (Recommended method)",
			Prompts:      []string{"What output do you get when you type 'rustc --version' in your terminal?"},
			Multiplicity: 1,
		},
		{
			ID:           3,
			Title:        "Install Docker",
			Description:  "Install Docker container platform on your system",
			Prompts:      []string{"What output do you get when you type 'docker --version' in your terminal?"},
			Multiplicity: 1,
		},
		{
			ID:           4,
			Title:        "Install SP1",
			Description:  "Install SP1 toolchain and cargo prove CLI (Recommended method)",
			Prompts:      []string{"What output do you get when you type 'cargo prove --version' in your terminal?"},
			Multiplicity: 1,
		},
		{
			ID:           5,
			Title:        "Download the example of core proof",
			Description:  "Clone and run the example of core proof to generate your first SP1 proof",
			Prompts:      []string{"What do you get in the terminal when you run command tail -n 1 README.md?"},
			Multiplicity: 1,
		},
		{
			ID:          6,
			Title:       "Generate SP1 Proof with Script",
			Description: "Navigate to script directory and generate SP1 proof for N=11",
			Prompts: []string{
				"What is the final value of N from the output?",
				"What is the Program VKey from the output?",
				"In which file is the proof saved?",
			},
			Multiplicity: 3,
		},
		{
			ID:           7,
			Title:        "Verify SP1 Proof",
			Description:  "Verify the generated SP1 proof using the verification command",
			Prompts:      []string{"What is the verification result message (last string)?"},
			Multiplicity: 1,
		},
	}
}

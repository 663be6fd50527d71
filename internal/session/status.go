package session

import "github.com/rsilvagit/jobfit/internal/classifier"

// StatusMessage is the one-line status shown next to the extraction controls.
func StatusMessage(snap Snapshot) string {
	if snap.State.Terminal() {
		if snap.State == StateSuccess {
			return "Job details extracted successfully!"
		}
		return "Extraction failed. Please try again."
	}
	if snap.State == StateExtracting {
		return "Extracting job details from LinkedIn..."
	}
	if snap.InFlight && snap.Address == "" {
		return "Checking current page..."
	}
	if snap.Address == "" {
		return "Open a LinkedIn job posting to get started."
	}
	if classifier.IsEligible(snap.Address) {
		return "Specific LinkedIn job page detected. Ready to extract."
	}
	return msgIneligible
}

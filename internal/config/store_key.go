package config

type StoreKeyStruct struct{}

func NewStoreKeyStruct() *StoreKeyStruct {
	return &StoreKeyStruct{}
}

// SessionToken returns the storage key for the encrypted session token
func (r *StoreKeyStruct) SessionToken() string {
	return "sessionToken"
}

// CurrentSimulator returns the storage key for the active simulator id
func (r *StoreKeyStruct) CurrentSimulator() string {
	return "currentSimulatorId"
}

// ExamResult returns the storage key for a simulator's persisted result
func (r *StoreKeyStruct) ExamResult(simulatorID string) string {
	return "examResults_" + simulatorID
}

// ReviewEnabled returns the storage key for a simulator's review flag
func (r *StoreKeyStruct) ReviewEnabled(simulatorID string) string {
	return "reviewEnabled_" + simulatorID
}

// ReviewUsed returns the storage key for a simulator's review consumption marker
func (r *StoreKeyStruct) ReviewUsed(simulatorID string) string {
	return "reviewUsed_" + simulatorID
}

// ExamSession returns the storage key for a simulator's encrypted session snapshot
func (r *StoreKeyStruct) ExamSession(simulatorID string) string {
	return "examSession_" + simulatorID
}

var StoreKey = NewStoreKeyStruct()

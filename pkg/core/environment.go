package core

import "fmt"

// Environment selects which exchange deployment a client talks to.
type Environment int

// Environment constants define the known deployments.
const (
	// EnvironmentMainnet is the global production API.
	EnvironmentMainnet Environment = iota
	// EnvironmentMainnetUS is the US production API.
	EnvironmentMainnetUS
	// EnvironmentTestnet is the spot test network.
	EnvironmentTestnet
)

var environmentNames = [...]string{
	"mainnet",
	"mainnet-us",
	"testnet",
}

var environmentHosts = [...]string{
	"https://api.binance.com",
	"https://api.binance.us",
	"https://testnet.binance.vision",
}

// String returns the string representation of the environment ("mainnet", "mainnet-us" or "testnet").
func (e Environment) String() string {
	if e < 0 || int(e) >= len(environmentNames) {
		return fmt.Sprintf("environment(%d)", int(e))
	}
	return environmentNames[e]
}

// BaseURL returns the REST host of the environment.
func (e Environment) BaseURL() string {
	if e < 0 || int(e) >= len(environmentHosts) {
		return ""
	}
	return environmentHosts[e]
}

// ParseEnvironment resolves an environment by name.
func ParseEnvironment(name string) (Environment, error) {
	for i, n := range environmentNames {
		if n == name {
			return Environment(i), nil
		}
	}
	return 0, fmt.Errorf("unknown environment %q", name)
}

func (e Environment) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Environment) UnmarshalText(text []byte) error {
	env, err := ParseEnvironment(string(text))
	if err != nil {
		return err
	}
	*e = env
	return nil
}

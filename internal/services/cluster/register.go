package cluster

import (
	"fmt"
	"os"

	consul "github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// Registration describes this server in the service catalog.
type Registration struct {
	ServiceName string
	// Address advertised to consul and used in the health check URL;
	// defaults to the hostname.
	Address string
	Port    int
	Tags    []string
}

// ServiceID is unique per host.
func (r Registration) ServiceID() string {
	return fmt.Sprintf("%s-%s", r.ServiceName, r.Address)
}

func (r Registration) agentRegistration() *consul.AgentServiceRegistration {
	return &consul.AgentServiceRegistration{
		ID:      r.ServiceID(),
		Name:    r.ServiceName,
		Address: r.Address,
		Port:    r.Port,
		Tags:    r.Tags,
		Check: &consul.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%d/health", r.Address, r.Port),
			Timeout:  "5s",
			Interval: "10s",
			// Desregistra automaticamente o serviço se ele ficar crítico por 1 minuto.
			DeregisterCriticalServiceAfter: "1m",
		},
	}
}

// Registrar keeps one service registered in consul.
type Registrar struct {
	client *consul.Client
	reg    Registration
	log    zerolog.Logger
}

// RegisterService registers reg with the agent at addrs.
func RegisterService(addrs string, reg Registration, log zerolog.Logger) (*Registrar, error) {
	log = log.With().Str("component", "cluster").Logger()

	if reg.Address == "" {
		hostname := os.Getenv("HOSTNAME")
		if hostname == "" {
			hostname, _ = os.Hostname()
		}
		reg.Address = hostname
	}

	client, err := NewConsulClient(addrs, log)
	if err != nil {
		return nil, err
	}

	if err := client.Agent().ServiceRegister(reg.agentRegistration()); err != nil {
		return nil, fmt.Errorf("failed to register service %s: %w", reg.ServiceName, err)
	}

	log.Info().Str("service", reg.ServiceName).Str("id", reg.ServiceID()).Msg("registered in consul")
	return &Registrar{client: client, reg: reg, log: log}, nil
}

// Deregister removes the service from the catalog.
func (r *Registrar) Deregister() error {
	if err := r.client.Agent().ServiceDeregister(r.reg.ServiceID()); err != nil {
		return fmt.Errorf("failed to deregister %s: %w", r.reg.ServiceID(), err)
	}
	r.log.Info().Str("id", r.reg.ServiceID()).Msg("deregistered from consul")
	return nil
}

package discovery

import (
	"fmt"
	"log"
	"strconv"

	"github.com/hashicorp/consul/api"

	"hyperhive-backend/internal/config"
)

type ServiceRegistry struct {
	client *api.Client
	config *config.Config
}

func NewServiceRegistry(cfg *config.Config) (*ServiceRegistry, error) {
	consulConfig := api.DefaultConfig()
	consulConfig.Address = cfg.ConsulAddress

	client, err := api.NewClient(consulConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Consul client: %v", err)
	}

	return &ServiceRegistry{client: client, config: cfg}, nil
}

func (sr *ServiceRegistry) Register() error {
	httpPort, err := strconv.Atoi(sr.config.Port)
	if err != nil {
		return fmt.Errorf("invalid HTTP port: %v", err)
	}

	registration := &api.AgentServiceRegistration{
		ID:      sr.config.ServiceID,
		Name:    sr.config.ServiceName,
		Port:    httpPort,
		Address: sr.config.ServiceAddress,
		Check: &api.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%s/health", sr.config.ServiceAddress, sr.config.Port),
			Interval: "10s",
			Timeout:  "5s",
		},
		Tags: []string{"learning", "http", "api"},
		Meta: map[string]string{
			"protocol": "http",
			"version":  sr.config.ServiceVersion,
		},
	}

	if err := sr.client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service with Consul: %v", err)
	}

	log.Printf("Registered service %s with Consul at %s:%d", sr.config.ServiceName, sr.config.ServiceAddress, httpPort)
	return nil
}

func (sr *ServiceRegistry) Deregister() error {
	if err := sr.client.Agent().ServiceDeregister(sr.config.ServiceID); err != nil {
		log.Printf("Error deregistering service: %v", err)
		return err
	}

	log.Printf("Deregistered service %s from Consul", sr.config.ServiceName)
	return nil
}

// FindService looks up healthy instances of a service by name.
func (sr *ServiceRegistry) FindService(serviceName string) ([]*api.ServiceEntry, error) {
	services, _, err := sr.client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to find service %s: %v", serviceName, err)
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("no healthy instances of service %s found", serviceName)
	}
	return services, nil
}

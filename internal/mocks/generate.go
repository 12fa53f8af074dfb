// Package mocks provides mock implementations for testing the renewal and counter services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the core port
// interfaces. The mocks are generated using go:generate directives and provide a fluent API
// for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockCompute := mocks.NewMockComputeController(ctrl)
//	mockCompute.EXPECT().Start(gomock.Any()).Return("i-0abc", nil)
package mocks

// Generate mock for ComputeController interface from internal/core package.
// This creates MockComputeController with methods: Start, Status, Release
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=compute_controller_mock.go github.com/cloudfolio/siteops/internal/core ComputeController

// Generate mock for RenewalLockRepository interface from internal/core package.
// This creates MockRenewalLockRepository with methods: Acquire, Release
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=renewal_lock_repository_mock.go github.com/cloudfolio/siteops/internal/core RenewalLockRepository

// Generate mock for RenewalRunRepository interface from internal/core package.
// This creates MockRenewalRunRepository with methods: Record, Latest
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=renewal_run_repository_mock.go github.com/cloudfolio/siteops/internal/core RenewalRunRepository

// Generate mock for CounterRepository interface from internal/core package.
// This creates MockCounterRepository with methods: Get, Increment, Ping
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=counter_repository_mock.go github.com/cloudfolio/siteops/internal/core CounterRepository

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Station wires the kernel primitives into the refueling scenario: a bank of
// capacity-1 pump resources drawing from one shared tank container, a
// generator process spawning vehicle processes with exponential
// interarrivals, and (in the tank-truck variant) a control process that keeps
// the tank topped up. All state is owned here or by the primitives; there are
// no ambient globals.
type Station struct {
	cfg   ScenarioConfig
	clock *Clock
	pumps []*Resource
	tank  *Container
	stats *Stats

	interarrival *ExpSampler
	vehicleLevel *UniformIntSampler
	service      *ClampedNormalSampler // nil under the rate model

	// depleted fires once, from the vehicle that finds the tank at or below
	// threshold or takes the partial fill that breaches it. Vehicles arriving
	// afterwards are turned away before they queue anywhere.
	depleted *Event

	vehicleSeq   int
	completed    int
	rejected     int
	partialFills int
}

// NewStation builds a fresh station for one replication. Nothing is shared
// with any previous run: clock, pumps, tank, stats and RNG streams are all
// new.
func NewStation(cfg ScenarioConfig) (*Station, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	clock := NewClock()
	tank, err := NewContainer(clock, cfg.TankCapacity, cfg.TankCapacity)
	if err != nil {
		return nil, err
	}

	pumps := make([]*Resource, cfg.Pumps)
	for i := range pumps {
		pumps[i] = NewResource(clock, fmt.Sprintf("pump-%d", i), 1)
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	s := &Station{
		cfg:          cfg,
		clock:        clock,
		pumps:        pumps,
		tank:         tank,
		stats:        NewStats(),
		interarrival: NewExpSampler(rng.ForSubsystem(SubsystemArrivals), cfg.MeanInterarrival),
		vehicleLevel: NewUniformIntSampler(rng.ForSubsystem(SubsystemVehicles), cfg.VehicleLevelMin, cfg.VehicleLevelMax),
		depleted:     clock.NewEvent(),
	}
	if cfg.ServiceModel == ModelNormal {
		s.service = NewClampedNormalSampler(rng.ForSubsystem(SubsystemService),
			cfg.ServiceMean, cfg.ServiceStdDev, cfg.MaxServiceResamples)
	}
	return s, nil
}

// Clock exposes the station's clock, mainly for tests that script arrivals.
func (s *Station) Clock() *Clock {
	return s.clock
}

// Tank exposes the shared fuel container.
func (s *Station) Tank() *Container {
	return s.tank
}

// Stats exposes the run's accumulator.
func (s *Station) Stats() *Stats {
	return s.stats
}

// Depleted exposes the station-closed signal.
func (s *Station) Depleted() *Event {
	return s.depleted
}

// Counts returns the running visit tallies: completed services, rejected
// vehicles and partial fills.
func (s *Station) Counts() (completed, rejected, partialFills int) {
	return s.completed, s.rejected, s.partialFills
}

// Run executes the scenario until the horizon elapses or the depletion
// signal fires, whichever comes first, and returns the collected metrics.
func (s *Station) Run() (*Results, error) {
	horizon := s.clock.Timeout(s.cfg.Horizon)
	stop := AnyOf(s.clock, horizon, s.depleted)

	NewProcess(s.clock, "generator", s.generate)
	if s.cfg.Variant == VariantTankTruck {
		NewProcess(s.clock, "station-control", s.control)
	}

	if err := s.clock.RunUntil(stop); err != nil {
		return nil, err
	}
	return s.collect(stop)
}

// generate is the arrival process: hold an exponential interarrival draw,
// spawn a vehicle, repeat. Each iteration re-registers itself through the
// clock, so the chain is iterative, not stack recursion.
func (s *Station) generate(p *Process) {
	p.Hold(s.interarrival.Sample(), func() {
		s.vehicleSeq++
		s.SpawnVehicle(fmt.Sprintf("vehicle-%d", s.vehicleSeq))
		s.generate(p)
	})
}

// SpawnVehicle starts one vehicle process at the current virtual time, with
// its arriving fuel level drawn from the vehicle RNG stream. Exported so
// tests can script deterministic arrival sequences.
func (s *Station) SpawnVehicle(name string) *Process {
	level := s.vehicleLevel.Sample()
	return NewProcess(s.clock, name, func(p *Process) {
		s.runVehicle(p, level)
	})
}

// runVehicle is the vehicle lifecycle up to pump admission:
// arrive, short-circuit if the station already closed, otherwise join the
// least-loaded pump queue.
func (s *Station) runVehicle(p *Process, fuelLevel float64) {
	if s.depleted.Triggered() {
		s.rejected++
		logrus.Infof("[t=%9.3f] %s: station closed, leaving without queuing", s.clock.Now(), p.Name())
		p.Finish()
		return
	}

	arrival := s.clock.Now()
	s.stats.OnEnqueue(arrival)
	pump := s.leastLoadedPump()
	logrus.Infof("[t=%9.3f] %s: arrived with %.0fL, heading to %s",
		arrival, p.Name(), fuelLevel, pump.Name())

	ticket := pump.Request(p)
	p.Wait(ticket.Admitted(), func(any) {
		s.serve(p, pump, ticket, arrival, fuelLevel)
	})
}

// leastLoadedPump picks the pump minimizing users+queue, lowest index on
// ties.
func (s *Station) leastLoadedPump() *Resource {
	best := s.pumps[0]
	for _, pump := range s.pumps[1:] {
		if pump.Load() < best.Load() {
			best = pump
		}
	}
	return best
}

// serve runs once the vehicle holds a pump. In the basic variant it applies
// the reserve-threshold policy: a dry station rejects the vehicle and fires
// the closed signal; a draw that would breach the threshold is cut down to
// exactly the reserve amount (clamped to zero) and also closes the station.
// The tank-truck variant always requests the full amount and simply blocks
// on the tank until the truck refills it.
func (s *Station) serve(p *Process, pump *Resource, ticket *Ticket, arrival, fuelLevel float64) {
	now := s.clock.Now()
	reserve := s.cfg.TankCapacity * s.cfg.ThresholdPercent / 100

	if s.cfg.Variant == VariantBasic && s.levelPercent() <= s.cfg.ThresholdPercent {
		s.stats.OnServiceStart(now)
		s.stats.OnDepart(now)
		s.rejected++
		s.releasePump(p, pump, ticket)
		s.depleted.Trigger(p)
		logrus.Infof("[t=%9.3f] %s: no fuel remaining, leaving", now, p.Name())
		p.Finish()
		return
	}

	required := s.cfg.VehicleTankSize - fuelLevel
	partial := false
	if s.cfg.Variant == VariantBasic &&
		(s.tank.Level()-required)/s.cfg.TankCapacity*100 <= s.cfg.ThresholdPercent {
		required = s.tank.Level() - reserve
		if required < 0 {
			required = 0
		}
		partial = true
	}

	s.stats.OnServiceStart(now)
	s.stats.RecordWait(now - arrival)

	if partial {
		s.partialFills++
		s.depleted.Trigger(p)
		logrus.Infof("[t=%9.3f] %s: tank near reserve, partial fill of %.1fL closes the station",
			now, p.Name(), required)
	}

	if required <= 0 {
		// Zero-length service: nothing left above the reserve to grant.
		s.depart(p, pump, ticket, arrival, 0)
		return
	}

	grant, err := s.tank.Get(required)
	if err != nil {
		logrus.Errorf("[t=%9.3f] %s: %v", now, p.Name(), err)
		s.releasePump(p, pump, ticket)
		p.Finish()
		return
	}
	p.Wait(grant, func(payload any) {
		amount := payload.(float64)
		p.Hold(s.serviceTime(amount), func() {
			s.depart(p, pump, ticket, arrival, amount)
		})
	})
}

// depart releases the pump, closes out the vehicle's statistics and finishes
// the process.
func (s *Station) depart(p *Process, pump *Resource, ticket *Ticket, arrival, amount float64) {
	now := s.clock.Now()
	s.releasePump(p, pump, ticket)
	s.stats.OnDepart(now)
	s.stats.RecordSojourn(now - arrival)
	s.completed++
	logrus.Infof("[t=%9.3f] %s: refueled %.1fL, leaving", now, p.Name(), amount)
	p.Finish()
}

func (s *Station) releasePump(p *Process, pump *Resource, ticket *Ticket) {
	if err := pump.Release(ticket); err != nil {
		logrus.Errorf("[t=%9.3f] %s: %v", s.clock.Now(), p.Name(), err)
	}
}

// serviceTime maps a granted amount to a pump-holding duration.
func (s *Station) serviceTime(amount float64) float64 {
	if s.service != nil {
		return s.service.Sample()
	}
	return amount / s.cfg.RefuelRate
}

func (s *Station) levelPercent() float64 {
	return s.tank.Level() / s.cfg.TankCapacity * 100
}

// control is the tank-truck polling loop: every interval, if the level
// percentage has dipped below the threshold, dispatch a truck and wait for it
// before polling again. The refill put always proceeds; vehicles blocked on
// the tank are woken in FIFO order when it lands.
func (s *Station) control(p *Process) {
	p.Hold(s.cfg.ControlInterval, func() {
		if s.levelPercent() < s.cfg.ThresholdPercent {
			logrus.Infof("[t=%9.3f] %s: level %.1f%% below threshold, calling tank truck",
				s.clock.Now(), p.Name(), s.levelPercent())
			truck := NewProcess(s.clock, "tank-truck", s.refill)
			p.Wait(truck.Done(), func(any) { s.control(p) })
			return
		}
		s.control(p)
	})
}

// refill is the truck process: arrive after the lead time, then top the tank
// up to full capacity in one deposit.
func (s *Station) refill(p *Process) {
	p.Hold(s.cfg.TruckLeadTime, func() {
		headroom := s.tank.Capacity() - s.tank.Level()
		if headroom > 0 {
			if err := s.tank.Put(headroom); err != nil {
				logrus.Errorf("[t=%9.3f] %s: %v", s.clock.Now(), p.Name(), err)
			} else {
				logrus.Infof("[t=%9.3f] %s: refilled %.1fL, tank full", s.clock.Now(), p.Name(), headroom)
			}
		}
		p.Finish()
	})
}

// collect finalizes the accumulator and assembles the run's results. The
// stop event's payload identifies whether the horizon or the depletion
// signal ended the run.
func (s *Station) collect(stop *Event) (*Results, error) {
	final := s.clock.Now()
	s.stats.Finalize(final)

	winner, _ := stop.Payload().(*Event)

	r := &Results{
		FinalTime:    final,
		Depleted:     winner == s.depleted,
		Completed:    s.completed,
		Rejected:     s.rejected,
		PartialFills: s.partialFills,
	}

	var err error
	if r.MeanQueueLength, err = s.stats.MeanQueueLength(final); err != nil {
		return nil, err
	}
	if r.MeanSystemLength, err = s.stats.MeanSystemLength(final); err != nil {
		return nil, err
	}
	if r.MeanWait, err = s.stats.MeanWait(); err != nil {
		return nil, err
	}
	if r.MeanSojourn, err = s.stats.MeanSojourn(); err != nil {
		return nil, err
	}
	return r, nil
}

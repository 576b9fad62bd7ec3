package reward_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/accrual/b"
	"github.com/optakt/accrual/bonus"
	"github.com/optakt/accrual/event"
	"github.com/optakt/accrual/reward"
	"github.com/optakt/accrual/token"
	"github.com/optakt/accrual/util"
)

const genesis uint64 = 1_650_000_000

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	carol = common.HexToAddress("0x00000000000000000000000000000000000ca501")
)

type fixture struct {
	params   reward.Params
	engine   *reward.Engine
	ledger   *token.Ledger
	recorder *event.Recorder
}

func units(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), b.UNIT)
}

func setup(t *testing.T) *fixture {
	t.Helper()

	params := reward.DefaultParams()
	ledger := token.NewLedger()
	for _, user := range []common.Address{alice, bob, carol} {
		require.NoError(t, ledger.Mint(user, units(10_000)))
	}
	require.NoError(t, ledger.Mint(params.RewardsVault, units(1_000_000)))

	recorder := event.NewRecorder()
	engine, err := reward.New(params, genesis, ledger, recorder, zerolog.Nop())
	require.NoError(t, err)

	return &fixture{
		params:   params,
		engine:   engine,
		ledger:   ledger,
		recorder: recorder,
	}
}

// indexIncrease mirrors the index formula:
// (drop * UNIT / maxRatio) * elapsed * UNIT / totalWeightedSupply.
func indexIncrease(t *testing.T, drop *uint256.Int, max *uint256.Int, elapsed uint64, supply *uint256.Int) *uint256.Int {
	t.Helper()
	base, err := util.MulDiv(drop, b.UNIT, max)
	require.NoError(t, err)
	accrued, err := util.MulUint64(base, elapsed)
	require.NoError(t, err)
	increase, err := util.MulDiv(accrued, b.UNIT, supply)
	require.NoError(t, err)
	return increase
}

func rewardsFor(t *testing.T, balance *uint256.Int, delta *uint256.Int) *uint256.Int {
	t.Helper()
	accrued, err := util.MulDiv(balance, delta, b.UNIT)
	require.NoError(t, err)
	return accrued
}

func assertEq(t *testing.T, expected *uint256.Int, actual *uint256.Int, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, expected.Dec(), actual.Dec(), msgAndArgs...)
}

func TestDeployment(t *testing.T) {

	f := setup(t)

	assert.True(t, f.engine.RewardIndex().IsZero())
	assertEq(t, &f.params.StartDropPerSecond, f.engine.CurrentDropPerSecond())
	assertEq(t, &f.params.EndDropPerSecond, f.engine.EndDropPerSecond())
	assert.Equal(t, genesis, f.engine.LastRewardUpdate())
	assert.Equal(t, genesis, f.engine.LastDropUpdate())
	assert.Equal(t, genesis, f.engine.StartDropTimestamp())
	assert.True(t, f.engine.TotalSupply().IsZero())
	assert.True(t, f.engine.TotalWeightedSupply().IsZero())
}

func TestNewRejectsInvalidParams(t *testing.T) {

	params := reward.DefaultParams()
	params.KickRatioPerWeek = 10_001
	_, err := reward.New(params, genesis, token.NewLedger(), nil, zerolog.Nop())
	assert.ErrorIs(t, err, reward.ErrInvalidParameter)

	params = reward.DefaultParams()
	params.Vault = common.Address{}
	_, err = reward.New(params, genesis, token.NewLedger(), nil, zerolog.Nop())
	assert.ErrorIs(t, err, reward.ErrZeroAddress)

	params = reward.DefaultParams()
	params.EndDropPerSecond = *units(1)
	_, err = reward.New(params, genesis, token.NewLedger(), nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestIndexSkipsEmptySupply(t *testing.T) {

	f := setup(t)

	require.NoError(t, f.engine.UpdateRewardState(genesis+1000))

	assert.True(t, f.engine.RewardIndex().IsZero())
	assert.Equal(t, genesis+1000, f.engine.LastRewardUpdate())
	assert.Empty(t, f.recorder.Filter(reward.TypeRewardIndexUpdated))
}

func TestRejectsTimestampInThePast(t *testing.T) {

	f := setup(t)

	require.NoError(t, f.engine.UpdateRewardState(genesis+1000))
	err := f.engine.UpdateRewardState(genesis + 999)
	assert.ErrorIs(t, err, reward.ErrInvalidTimestamp)
}

func TestSingleStaker(t *testing.T) {

	f := setup(t)
	start := genesis + 10

	require.NoError(t, f.engine.Stake(alice, units(1000), start))
	assertEq(t, units(1000), f.engine.TotalWeightedSupply())
	assertEq(t, units(9000), f.ledger.BalanceOf(alice))
	assertEq(t, units(1000), f.ledger.BalanceOf(f.params.Vault))

	now := start + 1000
	estimate, err := f.engine.EstimateClaimableRewards(alice, now)
	require.NoError(t, err)

	// estimates leave the state untouched
	assert.Equal(t, start, f.engine.LastRewardUpdate())
	assert.True(t, f.engine.ClaimableRewards(alice).IsZero())

	require.NoError(t, f.engine.UpdateUserRewardState(alice, now))

	delta := indexIncrease(t, &f.params.StartDropPerSecond, &f.params.Bonus.Max, 1000, units(1000))
	expected := rewardsFor(t, units(1000), delta)

	assertEq(t, delta, f.engine.RewardIndex())
	assertEq(t, delta, f.engine.UserRewardIndex(alice))
	assertEq(t, expected, f.engine.ClaimableRewards(alice))
	assertEq(t, expected, estimate)
	assert.Equal(t, "83333333333333000", expected.Dec())
}

func TestSameTimestampIsIdempotent(t *testing.T) {

	f := setup(t)

	require.NoError(t, f.engine.Stake(alice, units(1000), genesis))
	f.recorder.Reset()

	now := genesis + 500
	require.NoError(t, f.engine.UpdateRewardState(now))
	index := f.engine.RewardIndex()

	require.NoError(t, f.engine.UpdateRewardState(now))
	require.NoError(t, f.engine.UpdateUserRewardState(alice, now))
	claimable := f.engine.ClaimableRewards(alice)
	require.NoError(t, f.engine.UpdateUserRewardState(alice, now))

	assertEq(t, index, f.engine.RewardIndex())
	assertEq(t, claimable, f.engine.ClaimableRewards(alice))
	assert.Equal(t, now, f.engine.LastRewardUpdate())
	assert.Len(t, f.recorder.Filter(reward.TypeRewardIndexUpdated), 1)
}

func TestIndexIsMonotonic(t *testing.T) {

	f := setup(t)

	prev := f.engine.RewardIndex()
	check := func() {
		current := f.engine.RewardIndex()
		assert.False(t, current.Lt(prev), "index decreased from %s to %s", prev, current)
		prev = current
	}

	require.NoError(t, f.engine.Stake(alice, units(1000), genesis+10))
	check()
	require.NoError(t, f.engine.Stake(bob, units(250), genesis+50))
	check()
	require.NoError(t, f.engine.Lock(alice, units(800), f.params.Bonus.MinDuration, genesis+100))
	check()
	for i := uint64(1); i <= 20; i++ {
		require.NoError(t, f.engine.UpdateRewardState(genesis+100+i*b.WEEK))
		check()
	}
	require.NoError(t, f.engine.Transfer(bob, carol, units(100), genesis+100+21*b.WEEK))
	check()

	assert.False(t, f.engine.RewardIndex().IsZero())
}

func TestNoAccrualBeforeParticipation(t *testing.T) {

	f := setup(t)

	require.NoError(t, f.engine.Stake(alice, units(1000), genesis))

	for _, now := range []uint64{genesis + 100, genesis + b.DAY, genesis + b.MONTH + 5} {
		require.NoError(t, f.engine.UpdateUserRewardState(bob, now))
		assert.True(t, f.engine.ClaimableRewards(bob).IsZero())
	}
	assert.False(t, f.engine.RewardIndex().IsZero())
}

func TestAccrualFrozenAfterWithdrawal(t *testing.T) {

	f := setup(t)

	require.NoError(t, f.engine.Stake(alice, units(1000), genesis))
	require.NoError(t, f.engine.Stake(bob, units(1000), genesis))

	cooldown := genesis + b.DAY
	require.NoError(t, f.engine.Cooldown(alice, cooldown))

	withdrawal := cooldown + f.params.CooldownPeriod + 1
	burned, err := f.engine.Unstake(alice, units(1000), alice, withdrawal)
	require.NoError(t, err)
	assertEq(t, units(1000), burned)
	assert.Equal(t, uint64(0), f.engine.UserCooldown(alice))

	claimable := f.engine.ClaimableRewards(alice)
	assert.False(t, claimable.IsZero())

	for _, now := range []uint64{withdrawal + b.DAY, withdrawal + b.MONTH, withdrawal + 3*b.MONTH} {
		require.NoError(t, f.engine.UpdateUserRewardState(alice, now))
		assertEq(t, claimable, f.engine.ClaimableRewards(alice))
	}
	assertEq(t, units(1000), f.engine.TotalWeightedSupply())
}

func TestDistributionConservation(t *testing.T) {

	f := setup(t)
	start := genesis + 100

	require.NoError(t, f.engine.Stake(alice, units(1000), start))
	require.NoError(t, f.engine.Stake(bob, units(3000), start))
	require.NoError(t, f.engine.Stake(carol, units(6000), start))

	now := start + b.DAY
	sum := new(uint256.Int)
	for _, user := range []common.Address{alice, bob, carol} {
		require.NoError(t, f.engine.UpdateUserRewardState(user, now))
		sum.Add(sum, f.engine.ClaimableRewards(user))
	}

	base, err := util.MulDiv(&f.params.StartDropPerSecond, b.UNIT, &f.params.Bonus.Max)
	require.NoError(t, err)
	emitted := new(uint256.Int).Mul(base, uint256.NewInt(b.DAY))

	assert.False(t, sum.Gt(emitted))
	dust := new(uint256.Int).Sub(emitted, sum)
	assert.True(t, dust.Lt(uint256.NewInt(10_000)), "dust %s", dust)
}

func TestDistributionWithLockedStaker(t *testing.T) {

	f := setup(t)
	start := genesis + 100

	require.NoError(t, f.engine.Stake(alice, units(1000), start))
	require.NoError(t, f.engine.Lock(alice, units(1000), f.params.Bonus.MinDuration, start))
	require.NoError(t, f.engine.Stake(bob, units(1000), start))
	assertEq(t, units(3000), f.engine.TotalWeightedSupply())

	now := start + 1000
	require.NoError(t, f.engine.UpdateUserRewardState(alice, now))
	require.NoError(t, f.engine.UpdateUserRewardState(bob, now))

	sum := new(uint256.Int).Add(f.engine.ClaimableRewards(alice), f.engine.ClaimableRewards(bob))

	base, err := util.MulDiv(&f.params.StartDropPerSecond, b.UNIT, &f.params.Bonus.Max)
	require.NoError(t, err)
	emitted := new(uint256.Int).Mul(base, uint256.NewInt(1000))

	assert.False(t, sum.Gt(emitted))
	scaled := new(uint256.Int).Mul(sum, uint256.NewInt(10_000))
	floor := new(uint256.Int).Mul(emitted, uint256.NewInt(9_999))
	assert.True(t, scaled.Gt(floor))

	// the locked staker earns close to twice the unlocked one
	assert.True(t, f.engine.ClaimableRewards(alice).Gt(f.engine.ClaimableRewards(bob)))
}

func TestLockedAccrualUsesAverageRatio(t *testing.T) {

	f := setup(t)
	start := genesis + 100
	duration := f.params.Bonus.MinDuration

	require.NoError(t, f.engine.Stake(alice, units(1000), start))
	require.NoError(t, f.engine.Lock(alice, units(1000), duration, start))

	ratio := f.engine.UserCurrentBonusRatio(alice)
	decrease := f.engine.UserBonusRatioDecrease(alice)
	assertEq(t, units(2), ratio)
	expectedDecrease, err := f.params.Bonus.DecreaseRate(units(2), duration)
	require.NoError(t, err)
	assertEq(t, expectedDecrease, decrease)
	assertEq(t, units(2000), f.engine.TotalWeightedSupply())
	assertEq(t, units(1000), f.engine.TotalLocked())

	elapsed := uint64(100_000)
	require.NoError(t, f.engine.UpdateUserRewardState(alice, start+elapsed))

	delta := indexIncrease(t, &f.params.StartDropPerSecond, &f.params.Bonus.Max, elapsed, units(2000))
	end, err := bonus.CurrentRatio(ratio, decrease, elapsed)
	require.NoError(t, err)
	avg, err := bonus.AverageRatio(ratio, end)
	require.NoError(t, err)
	weighted, err := util.MulDiv(delta, avg, b.UNIT)
	require.NoError(t, err)
	expected := rewardsFor(t, units(1000), weighted)

	assertEq(t, expected, f.engine.ClaimableRewards(alice))
	assertEq(t, end, f.engine.UserCurrentBonusRatio(alice))

	weight, err := util.MulDiv(units(1000), end, b.UNIT)
	require.NoError(t, err)
	assertEq(t, weight, f.engine.TotalWeightedSupply())
}

func TestBonusRatioDecaysToZero(t *testing.T) {

	f := setup(t)
	start := genesis + 100
	duration := f.params.Bonus.MinDuration

	require.NoError(t, f.engine.Stake(alice, units(1000), start))
	require.NoError(t, f.engine.Lock(alice, units(1000), duration, start))
	decrease := f.engine.UserBonusRatioDecrease(alice)

	half, err := f.engine.EstimateBonusRatio(alice, start+duration/2)
	require.NoError(t, err)
	expected, err := bonus.CurrentRatio(units(2), decrease, duration/2)
	require.NoError(t, err)
	assertEq(t, expected, half)

	atEnd, err := f.engine.EstimateBonusRatio(alice, start+duration)
	require.NoError(t, err)
	assert.False(t, atEnd.Lt(&f.params.Bonus.Base))

	require.NoError(t, f.engine.UpdateUserRewardState(alice, start+2*duration+b.WEEK))
	assert.True(t, f.engine.UserCurrentBonusRatio(alice).IsZero())
	assert.True(t, f.engine.TotalWeightedSupply().IsZero())

	// still locked until unlocked or kicked
	assert.True(t, f.engine.UserLock(alice).Active())
	claimable := f.engine.ClaimableRewards(alice)

	require.NoError(t, f.engine.UpdateUserRewardState(alice, start+3*duration))
	assertEq(t, claimable, f.engine.ClaimableRewards(alice))
}

func TestLockValidation(t *testing.T) {

	f := setup(t)
	start := genesis + 100
	min := f.params.Bonus.MinDuration
	max := f.params.Bonus.MaxDuration

	require.NoError(t, f.engine.Stake(alice, units(1000), start))

	assert.ErrorIs(t, f.engine.Lock(alice, units(0), min, start), reward.ErrInvalidAmount)
	assert.ErrorIs(t, f.engine.Lock(alice, units(100), min-1, start), reward.ErrInvalidDuration)
	assert.ErrorIs(t, f.engine.Lock(alice, units(100), max+1, start), reward.ErrInvalidDuration)
	assert.ErrorIs(t, f.engine.Lock(alice, units(1001), min, start), reward.ErrInsufficientBalance)

	require.NoError(t, f.engine.Lock(alice, units(500), 2*min, start))
	assert.ErrorIs(t, f.engine.Lock(alice, units(400), 2*min, start+10), reward.ErrSmallerAmount)
	assert.ErrorIs(t, f.engine.Lock(alice, units(600), min, start+10), reward.ErrSmallerDuration)

	// relocking restarts the ratio from the new duration and amount
	require.NoError(t, f.engine.Lock(alice, units(700), max, start+10))
	lock := f.engine.UserLock(alice)
	assertEq(t, units(700), &lock.Amount)
	assert.Equal(t, start+10, lock.StartTimestamp)
	assert.Equal(t, max, lock.Duration)
	assertEq(t, units(6), f.engine.UserCurrentBonusRatio(alice))
	assertEq(t, units(700), f.engine.TotalLocked())
	assertEq(t, units(300+4200), f.engine.TotalWeightedSupply())
	assertEq(t, units(300), f.engine.AvailableBalanceOf(alice))
}

func TestUnlock(t *testing.T) {

	f := setup(t)
	start := genesis + 100
	duration := f.params.Bonus.MinDuration

	assert.ErrorIs(t, f.engine.Unlock(alice, start), reward.ErrNotLocked)

	require.NoError(t, f.engine.Stake(alice, units(1000), start))
	require.NoError(t, f.engine.Lock(alice, units(400), duration, start))

	assert.ErrorIs(t, f.engine.Unlock(alice, start+duration-1), reward.ErrLockNotExpired)

	require.NoError(t, f.engine.Unlock(alice, start+duration))
	assert.False(t, f.engine.UserLock(alice).Active())
	assert.True(t, f.engine.TotalLocked().IsZero())
	assert.True(t, f.engine.UserCurrentBonusRatio(alice).IsZero())
	assertEq(t, units(1000), f.engine.TotalWeightedSupply())
	assertEq(t, units(1000), f.engine.AvailableBalanceOf(alice))

	unlocked := f.recorder.Filter(reward.TypeUnlocked)
	require.Len(t, unlocked, 1)
	assertEq(t, units(400), unlocked[0].(reward.Unlocked).Amount)
}

func TestKick(t *testing.T) {

	f := setup(t)
	start := genesis + 100
	duration := f.params.Bonus.MinDuration
	end := start + duration

	require.NoError(t, f.engine.Stake(alice, units(1000), start))
	require.NoError(t, f.engine.Lock(alice, units(1000), duration, start))

	assert.ErrorIs(t, f.engine.Kick(bob, carol, end+3*b.WEEK), reward.ErrNotLocked)
	assert.ErrorIs(t, f.engine.Kick(alice, alice, end+3*b.WEEK), reward.ErrCannotSelfKick)
	assert.ErrorIs(t, f.engine.Kick(alice, bob, end+f.params.UnlockDelay), reward.ErrCannotBeKicked)

	require.NoError(t, f.engine.Kick(alice, bob, end+3*b.WEEK+1))

	// three weeks past expiry at 10% per week
	assertEq(t, units(700), f.engine.BalanceOf(alice))
	assertEq(t, units(300), f.engine.BalanceOf(bob))
	assertEq(t, units(1000), f.engine.TotalSupply())
	assert.True(t, f.engine.TotalLocked().IsZero())
	assert.False(t, f.engine.UserLock(alice).Active())
	assertEq(t, units(1000), f.engine.TotalWeightedSupply())

	kicked := f.recorder.Filter(reward.TypeKicked)
	require.Len(t, kicked, 1)
	kick := kicked[0].(reward.Kicked)
	assertEq(t, units(300), kick.Penalty)
	assertEq(t, units(1000), kick.Amount)
	assert.Equal(t, bob, kick.Kicker)
}

func TestKickPenaltyIsCapped(t *testing.T) {

	f := setup(t)
	start := genesis + 100
	duration := f.params.Bonus.MinDuration

	require.NoError(t, f.engine.Stake(alice, units(1000), start))
	require.NoError(t, f.engine.Lock(alice, units(500), duration, start))

	require.NoError(t, f.engine.Kick(alice, bob, start+duration+20*b.WEEK))

	assertEq(t, units(500), f.engine.BalanceOf(alice))
	assertEq(t, units(500), f.engine.BalanceOf(bob))
}

func TestCooldownWindow(t *testing.T) {

	f := setup(t)
	start := genesis + 100

	require.NoError(t, f.engine.Stake(alice, units(1000), start))

	_, err := f.engine.Unstake(alice, units(100), alice, start+1)
	assert.ErrorIs(t, err, reward.ErrInsufficientCooldown)
	assert.ErrorIs(t, f.engine.Cooldown(bob, start), reward.ErrInsufficientBalance)

	cooldown := start + 100
	require.NoError(t, f.engine.Cooldown(alice, cooldown))
	assert.Equal(t, cooldown, f.engine.UserCooldown(alice))

	_, err = f.engine.Unstake(alice, units(100), alice, cooldown+f.params.CooldownPeriod)
	assert.ErrorIs(t, err, reward.ErrInsufficientCooldown)

	burned, err := f.engine.Unstake(alice, units(400), carol, cooldown+f.params.CooldownPeriod+1)
	require.NoError(t, err)
	assertEq(t, units(400), burned)
	assertEq(t, units(600), f.engine.BalanceOf(alice))
	assertEq(t, units(10_400), f.ledger.BalanceOf(carol))
	assert.Equal(t, cooldown, f.engine.UserCooldown(alice))

	_, err = f.engine.Unstake(alice, units(100), alice, cooldown+f.params.CooldownPeriod+f.params.UnstakePeriod)
	require.NoError(t, err)

	_, err = f.engine.Unstake(alice, units(100), alice, cooldown+f.params.CooldownPeriod+f.params.UnstakePeriod+1)
	assert.ErrorIs(t, err, reward.ErrUnstakePeriodExpired)

	_, err = f.engine.Unstake(alice, units(0), alice, cooldown+f.params.CooldownPeriod+1)
	assert.ErrorIs(t, err, reward.ErrInvalidAmount)
}

func TestCooldownRejectsTimestampInThePast(t *testing.T) {

	f := setup(t)
	start := genesis + 1000

	require.NoError(t, f.engine.Stake(alice, units(1000), start))

	err := f.engine.Cooldown(alice, genesis+100)
	assert.ErrorIs(t, err, reward.ErrInvalidTimestamp)
	assert.Equal(t, uint64(0), f.engine.UserCooldown(alice))

	// a backdated cooldown would have opened the unstake window already
	_, err = f.engine.Unstake(alice, units(1), alice, start+f.params.CooldownPeriod)
	assert.ErrorIs(t, err, reward.ErrInsufficientCooldown)
}

func TestUnstakeCapsAtAvailableBalance(t *testing.T) {

	f := setup(t)
	start := genesis + 100

	require.NoError(t, f.engine.Stake(alice, units(1000), start))
	require.NoError(t, f.engine.Lock(alice, units(600), f.params.Bonus.MinDuration, start))
	require.NoError(t, f.engine.Cooldown(alice, start))

	burned, err := f.engine.Unstake(alice, units(1000), alice, start+f.params.CooldownPeriod+1)
	require.NoError(t, err)
	assertEq(t, units(400), burned)
	assertEq(t, units(600), f.engine.BalanceOf(alice))
	assert.True(t, f.engine.AvailableBalanceOf(alice).IsZero())

	_, err = f.engine.Unstake(alice, units(1), alice, start+f.params.CooldownPeriod+2)
	assert.ErrorIs(t, err, reward.ErrAvailableBalanceTooLow)
}

func TestStakeMergesCooldown(t *testing.T) {

	f := setup(t)
	start := genesis + 100

	require.NoError(t, f.engine.Stake(alice, units(1000), start))
	cooldown := start + 100
	require.NoError(t, f.engine.Cooldown(alice, cooldown))

	now := cooldown + 1000
	require.NoError(t, f.engine.Stake(alice, units(1000), now))

	// equal amounts average the two timestamps
	assert.Equal(t, cooldown+500, f.engine.UserCooldown(alice))

	// a lapsed cooldown is dropped
	later := now + f.params.CooldownPeriod + f.params.UnstakePeriod + b.DAY
	require.NoError(t, f.engine.Stake(alice, units(1), later))
	assert.Equal(t, uint64(0), f.engine.UserCooldown(alice))
}

func TestTransfer(t *testing.T) {

	f := setup(t)
	start := genesis + 100

	require.NoError(t, f.engine.Stake(alice, units(1000), start))

	assert.ErrorIs(t, f.engine.Transfer(alice, alice, units(1), start+10), reward.ErrSelfTransfer)
	assert.ErrorIs(t, f.engine.Transfer(alice, bob, units(0), start+10), reward.ErrInvalidAmount)
	assert.ErrorIs(t, f.engine.Transfer(alice, common.Address{}, units(1), start+10), reward.ErrZeroAddress)
	assert.ErrorIs(t, f.engine.Transfer(alice, bob, units(1001), start+10), reward.ErrAvailableBalanceTooLow)

	first := start + 1000
	require.NoError(t, f.engine.Transfer(alice, bob, units(400), first))
	assertEq(t, units(600), f.engine.BalanceOf(alice))
	assertEq(t, units(400), f.engine.BalanceOf(bob))
	assertEq(t, units(1000), f.engine.TotalWeightedSupply())

	second := first + 1000
	require.NoError(t, f.engine.UpdateUserRewardState(alice, second))
	require.NoError(t, f.engine.UpdateUserRewardState(bob, second))

	delta := indexIncrease(t, &f.params.StartDropPerSecond, &f.params.Bonus.Max, 1000, units(1000))
	before := rewardsFor(t, units(1000), delta)
	after := rewardsFor(t, units(600), delta)

	assertEq(t, new(uint256.Int).Add(before, after), f.engine.ClaimableRewards(alice))
	assertEq(t, rewardsFor(t, units(400), delta), f.engine.ClaimableRewards(bob))
}

func TestTransferCannotMoveLockedBalance(t *testing.T) {

	f := setup(t)
	start := genesis + 100

	require.NoError(t, f.engine.Stake(alice, units(1000), start))
	require.NoError(t, f.engine.Lock(alice, units(800), f.params.Bonus.MinDuration, start))

	err := f.engine.Transfer(alice, bob, units(201), start+10)
	assert.ErrorIs(t, err, reward.ErrAvailableBalanceTooLow)
	require.NoError(t, f.engine.Transfer(alice, bob, units(200), start+10))
}

func TestClaim(t *testing.T) {

	f := setup(t)
	start := genesis + 100

	require.NoError(t, f.engine.Stake(alice, units(1000), start))

	now := start + b.DAY
	_, err := f.engine.Claim(alice, units(0), now)
	assert.ErrorIs(t, err, reward.ErrInvalidAmount)
	assert.Equal(t, start, f.engine.LastRewardUpdate())

	expected, err := f.engine.EstimateClaimableRewards(alice, now)
	require.NoError(t, err)
	half := new(uint256.Int).Div(expected, b.D2)

	paid, err := f.engine.Claim(alice, half, now)
	require.NoError(t, err)
	assertEq(t, half, paid)
	assertEq(t, new(uint256.Int).Sub(expected, half), f.engine.ClaimableRewards(alice))

	wallet := f.ledger.BalanceOf(alice)
	remaining := f.engine.ClaimableRewards(alice)

	paid, err = f.engine.Claim(alice, units(1_000_000), now)
	require.NoError(t, err)
	assertEq(t, remaining, paid)
	assert.True(t, f.engine.ClaimableRewards(alice).IsZero())
	assertEq(t, new(uint256.Int).Add(wallet, remaining), f.ledger.BalanceOf(alice))

	claims := f.recorder.Filter(reward.TypeClaimRewards)
	require.Len(t, claims, 2)
	last := claims[1].(reward.ClaimRewards)
	assertEq(t, remaining, last.Amount)
	assert.Equal(t, alice, last.User)
}

func TestEstimateMatchesSettlement(t *testing.T) {

	f := setup(t)
	start := genesis + 100

	require.NoError(t, f.engine.Stake(alice, units(1000), start))
	require.NoError(t, f.engine.Lock(alice, units(750), f.params.Bonus.MinDuration+b.MONTH, start+10))
	require.NoError(t, f.engine.Stake(bob, units(2500), start+20))

	now := start + 4*b.MONTH + 12345
	estimate, err := f.engine.EstimateClaimableRewards(alice, now)
	require.NoError(t, err)
	ratio, err := f.engine.EstimateBonusRatio(alice, now)
	require.NoError(t, err)

	require.NoError(t, f.engine.UpdateUserRewardState(alice, now))

	assertEq(t, estimate, f.engine.ClaimableRewards(alice))
	assertEq(t, ratio, f.engine.UserCurrentBonusRatio(alice))
}

func TestFailedOperationRollsBack(t *testing.T) {

	params := reward.DefaultParams()
	ledger := token.NewLedger()
	require.NoError(t, ledger.Mint(alice, units(10)))
	recorder := event.NewRecorder()

	engine, err := reward.New(params, genesis, ledger, recorder, zerolog.Nop())
	require.NoError(t, err)

	err = engine.Stake(alice, units(100), genesis+100)
	assert.ErrorIs(t, err, token.ErrInsufficientBalance)

	assert.True(t, engine.TotalSupply().IsZero())
	assert.True(t, engine.BalanceOf(alice).IsZero())
	assert.Equal(t, genesis, engine.LastRewardUpdate())
	assert.Empty(t, engine.Users())
	assert.Empty(t, recorder.Events())
	assertEq(t, units(10), ledger.BalanceOf(alice))
}

func TestZeroAddressNeverAccrues(t *testing.T) {

	f := setup(t)

	require.NoError(t, f.engine.Stake(alice, units(1000), genesis))
	require.NoError(t, f.engine.UpdateUserRewardState(common.Address{}, genesis+b.DAY))

	estimate, err := f.engine.EstimateClaimableRewards(common.Address{}, genesis+2*b.DAY)
	require.NoError(t, err)
	assert.True(t, estimate.IsZero())
	assert.Equal(t, []common.Address{alice}, f.engine.Users())

	assert.ErrorIs(t, f.engine.Stake(common.Address{}, units(1), genesis+b.DAY), reward.ErrZeroAddress)
	_, err = f.engine.Claim(common.Address{}, units(1), genesis+b.DAY)
	assert.ErrorIs(t, err, reward.ErrZeroAddress)
}

func TestEmissionDropsThroughEngine(t *testing.T) {

	f := setup(t)

	require.NoError(t, f.engine.UpdateRewardState(genesis+b.MONTH))
	step := f.params.StartDropPerSecond.Clone()
	expected := step.Sub(step, f.engine.CurrentDropPerSecond())
	assert.False(t, expected.IsZero())
	assert.Len(t, f.recorder.Filter(reward.TypeDropPerSecondUpdated), 1)

	require.NoError(t, f.engine.UpdateRewardState(genesis+24*b.MONTH))
	assertEq(t, &f.params.EndDropPerSecond, f.engine.CurrentDropPerSecond())

	require.NoError(t, f.engine.UpdateRewardState(genesis+25*b.MONTH+b.DAY))
	assertEq(t, &f.params.EndDropPerSecond, f.engine.CurrentDropPerSecond())

	err := f.engine.SetEndDropPerSecond(units(1), genesis+25*b.MONTH+b.DAY)
	assert.ErrorIs(t, err, reward.ErrInvalidParameter)

	require.NoError(t, f.engine.SetEndDropPerSecond(uint256.NewInt(0), genesis+25*b.MONTH+b.DAY))
	assertEq(t, &f.params.EndDropPerSecond, f.engine.CurrentDropPerSecond())

	require.NoError(t, f.engine.UpdateRewardState(genesis+27*b.MONTH))
	assert.True(t, f.engine.CurrentDropPerSecond().IsZero())
	assert.True(t, f.engine.EndDropPerSecond().IsZero())
}

func TestAdminSetters(t *testing.T) {

	f := setup(t)
	now := genesis + 100

	assert.ErrorIs(t, f.engine.SetLockBonusRatios(units(7), units(6), now), reward.ErrInvalidParameter)
	assert.ErrorIs(t, f.engine.SetLockDurations(b.MONTH, b.MONTH, now), reward.ErrInvalidParameter)
	assert.ErrorIs(t, f.engine.SetKickRatio(10_001, now), reward.ErrInvalidParameter)

	require.NoError(t, f.engine.SetLockBonusRatios(units(3), units(5), now))
	require.NoError(t, f.engine.SetLockDurations(b.MONTH, b.YEAR, now))
	require.NoError(t, f.engine.SetKickRatio(500, now))

	params := f.engine.Params()
	assertEq(t, units(3), &params.Bonus.Min)
	assertEq(t, units(5), &params.Bonus.Max)
	assert.Equal(t, b.MONTH, params.Bonus.MinDuration)
	assert.Equal(t, b.YEAR, params.Bonus.MaxDuration)
	assert.Equal(t, uint64(500), params.KickRatioPerWeek)

	require.NoError(t, f.engine.Stake(alice, units(100), now))
	require.NoError(t, f.engine.Lock(alice, units(100), b.MONTH, now))
	assertEq(t, units(3), f.engine.UserCurrentBonusRatio(alice))

	assert.Len(t, f.recorder.Filter(reward.TypeParameterUpdated), 5)
}

func TestSnapshotRestore(t *testing.T) {

	f := setup(t)
	start := genesis + 100

	require.NoError(t, f.engine.Stake(alice, units(1000), start))
	require.NoError(t, f.engine.Lock(alice, units(500), f.params.Bonus.MinDuration, start))
	require.NoError(t, f.engine.Stake(bob, units(300), start+50))
	require.NoError(t, f.engine.UpdateRewardState(start+b.DAY))

	snapshot := f.engine.Snapshot()
	restored, err := reward.Restore(snapshot, f.ledger, nil, zerolog.Nop())
	require.NoError(t, err)

	now := start + b.MONTH + b.DAY
	require.NoError(t, f.engine.UpdateUserRewardState(alice, now))
	require.NoError(t, restored.UpdateUserRewardState(alice, now))

	assertEq(t, f.engine.ClaimableRewards(alice), restored.ClaimableRewards(alice))
	assertEq(t, f.engine.RewardIndex(), restored.RewardIndex())
	assertEq(t, f.engine.CurrentDropPerSecond(), restored.CurrentDropPerSecond())
	assertEq(t, f.engine.TotalWeightedSupply(), restored.TotalWeightedSupply())

	broken := f.engine.Snapshot()
	broken.Global.TotalSupply.Clear()
	_, err = reward.Restore(broken, f.ledger, nil, zerolog.Nop())
	assert.ErrorIs(t, err, reward.ErrInconsistentSnapshot)
}

func TestRestoreRejectsOverflowingSnapshot(t *testing.T) {

	f := setup(t)

	require.NoError(t, f.engine.Stake(alice, units(1000), genesis+100))
	require.NoError(t, f.engine.Stake(bob, units(300), genesis+100))

	// balances wrap around to the zero total supply
	snapshot := f.engine.Snapshot()
	first := snapshot.Accounts[alice]
	first.Balance.SetAllOne()
	snapshot.Accounts[alice] = first
	second := snapshot.Accounts[bob]
	second.Balance.SetOne()
	snapshot.Accounts[bob] = second
	snapshot.Global.TotalSupply.Clear()

	_, err := reward.Restore(snapshot, f.ledger, nil, zerolog.Nop())
	assert.ErrorIs(t, err, reward.ErrInconsistentSnapshot)
}

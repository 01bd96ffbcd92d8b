// Package leveling 经验值与等级换算，全部为纯函数。
//
// 升到第 L 级的边际消耗为 L*100，累计消耗为 100*L*(L+1)/2。
// 超出 int 范围的累计值饱和为 math.MaxInt，对应的等级不可达。
package leveling

import "math"

const xpStep = 100

// MaxXP 单个用户累计经验上限，单次发放也不能超过该值
const MaxXP = 1_000_000_000

// maxLevel 累计经验仍能用 int 表示的最高等级
var maxLevel = highestRepresentableLevel()

// XPRequiredForLevel 从 level-1 升到 level 所需经验
func XPRequiredForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	if level > math.MaxInt/xpStep {
		return math.MaxInt
	}
	return level * xpStep
}

// TotalXPForLevel 从 0 级升到 level 的累计经验
func TotalXPForLevel(level int) int {
	total, ok := totalXP(level)
	if !ok {
		return math.MaxInt
	}
	return total
}

// LevelFromXP 满足 TotalXPForLevel(L) <= xp 的最大 L
func LevelFromXP(xp int) int {
	if xp <= 0 {
		return 0
	}

	// 先用闭式解估算，再逐级修正浮点误差
	level := int((math.Sqrt(1+8*float64(xp)/xpStep) - 1) / 2)
	if level > maxLevel {
		level = maxLevel
	}
	for level > 0 && TotalXPForLevel(level) > xp {
		level--
	}
	for level < maxLevel && TotalXPForLevel(level+1) <= xp {
		level++
	}
	return level
}

// LevelProgress 当前等级内已获得的经验与升到下一级所需经验。
// level 由调用方保证与 xp 一致，这里不重新计算。
func LevelProgress(xp, level int) (progress, needed int) {
	progress = xp - TotalXPForLevel(level)
	if progress < 0 {
		progress = 0
	}
	next := level
	if next < math.MaxInt {
		next++
	}
	return progress, XPRequiredForLevel(next)
}

// ProgressPercent needed 为 0 时返回 0，结果不超过 100
func ProgressPercent(progress, needed int) float64 {
	if needed <= 0 {
		return 0
	}
	pct := float64(progress) / float64(needed) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// AddXP 在 MaxXP 处饱和的加法，ok 为 false 表示结果被截断
func AddXP(xp, amount int) (sum int, ok bool) {
	if amount <= 0 {
		return xp, true
	}
	if xp >= MaxXP {
		return xp, false
	}
	if amount > MaxXP-xp {
		return MaxXP, false
	}
	return xp + amount, true
}

// totalXP 溢出时 ok 为 false
func totalXP(level int) (int, bool) {
	if level <= 0 {
		return 0, true
	}
	if level >= math.MaxInt/2 {
		return 0, false
	}
	// L 与 L+1 必有一个偶数，先除 2 再乘避免中间值溢出
	a, b := level, level+1
	if a%2 == 0 {
		a /= 2
	} else {
		b /= 2
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	half := a * b
	if half > math.MaxInt/xpStep {
		return 0, false
	}
	return half * xpStep, true
}

func highestRepresentableLevel() int {
	level := int((math.Sqrt(1+8*float64(math.MaxInt)/xpStep) - 1) / 2)
	for level > 0 {
		if _, ok := totalXP(level); ok {
			break
		}
		level--
	}
	for {
		if _, ok := totalXP(level + 1); !ok {
			return level
		}
		level++
	}
}

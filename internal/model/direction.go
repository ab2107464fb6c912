package model

// Direction 投票方向，闭集两值，杜绝自由字符串
type Direction int

const (
	DirectionUp Direction = iota + 1
	DirectionDown
)

// String 返回方向在存储键与哈希字段里使用的稳定标签
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	}
	return "unknown"
}

func (d Direction) Valid() bool { return d == DirectionUp || d == DirectionDown }

// Opposite 返回相反方向
func (d Direction) Opposite() Direction {
	if d == DirectionUp {
		return DirectionDown
	}
	return DirectionUp
}

// ParseDirection 解析客户端传入的方向标签
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirectionUp, true
	case "down":
		return DirectionDown, true
	}
	return 0, false
}

package postproc

// SegPalette 语义分割默认配色 (YUV)，按类别 ID 索引
var SegPalette = [26][3]uint8{
	{76, 84, 255}, {149, 43, 21}, {92, 127, 114},
	{255, 0, 148}, {178, 171, 0}, {86, 217, 66},
	{150, 42, 202}, {161, 93, 13}, {152, 108, 187},
	{93, 126, 233}, {168, 127, 92}, {105, 212, 234},
	{215, 150, 139}, {214, 141, 156}, {64, 91, 81},
	{29, 255, 107}, {32, 109, 183}, {97, 73, 136},
	{35, 136, 173}, {62, 92, 147}, {255, 128, 128},
	{79, 226, 192}, {210, 9, 123}, {78, 155, 127},
	{126, 98, 132}, {12, 183, 119},
}

// SegColor 返回类别在默认配色中的颜色，超出范围时返回中性色度
func SegColor(classID int) (Color, bool) {
	if classID < 0 || classID >= len(SegPalette) {
		return NeutralChroma, false
	}
	return ColorFromYUV(SegPalette[classID]), true
}

// PoseClassPalette 姿态检测按类别区分的框颜色 (RGB)
var PoseClassPalette = [6][3]uint8{
	{0, 0, 255}, {255, 0, 0},
	{0, 255, 0}, {255, 0, 255},
	{0, 255, 255}, {255, 255, 0},
}

// PosePalette 人体骨架配色 (RGB)
var PosePalette = [20][3]uint8{
	{255, 128, 0}, {255, 153, 51},
	{255, 178, 102}, {230, 230, 0},
	{255, 153, 255}, {153, 204, 255},
	{255, 102, 255}, {255, 51, 255},
	{102, 178, 255}, {51, 153, 255},
	{255, 153, 153}, {255, 102, 102},
	{255, 51, 51}, {153, 255, 153},
	{102, 255, 102}, {51, 255, 51},
	{0, 255, 0}, {0, 0, 255},
	{255, 0, 0}, {255, 255, 255},
}

// PoseLimbColorIndex COCO 骨架每条边在 PosePalette 中的颜色
var PoseLimbColorIndex = [19]int{9, 9, 9, 9, 7, 7, 7, 0, 0, 0, 0, 0, 16, 16, 16, 16, 16, 16, 16}

// PoseKeyPointColorIndex COCO 17 个关键点在 PosePalette 中的颜色
var PoseKeyPointColorIndex = [17]int{16, 16, 16, 16, 16, 0, 0, 0, 0, 0, 0, 9, 9, 9, 9, 9, 9}

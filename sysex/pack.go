package sysex

// pack7 spreads 8 bit data over 7 bit bytes. Every group of up to seven
// bytes is preceded by a byte holding their high bits, first byte in bit 6.
func pack7(data []byte) []byte {
	out := make([]byte, 0, len(data)+(len(data)+6)/7)
	for i := 0; i < len(data); i += 7 {
		group := data[i:min(i+7, len(data))]
		var msbs byte
		for j, b := range group {
			if b&0x80 != 0 {
				msbs |= 1 << (6 - j)
			}
		}
		out = append(out, msbs)
		for _, b := range group {
			out = append(out, b&0x7F)
		}
	}
	return out
}

// unpack7 reverses pack7. A group header without data is ignored.
func unpack7(packed []byte) []byte {
	out := make([]byte, 0, len(packed))
	for i := 0; i < len(packed); i += 8 {
		msbs := packed[i]
		group := packed[i+1 : min(i+8, len(packed))]
		for j, b := range group {
			if msbs&(1<<(6-j)) != 0 {
				b |= 0x80
			}
			out = append(out, b)
		}
	}
	return out
}

// split14 returns the two 7 bit bytes of the low 14 bits of v
func split14(v int) (hi, lo byte) {
	return byte(v>>7) & 0x7F, byte(v) & 0x7F
}

func join14(hi, lo byte) int {
	return int(hi&0x7F)<<7 | int(lo&0x7F)
}

func checksum(packed []byte) int {
	sum := 0
	for _, b := range packed {
		sum += int(b)
	}
	return sum & 0x3FFF
}

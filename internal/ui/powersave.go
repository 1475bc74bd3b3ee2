package ui

import "github.com/hajimehoshi/ebiten/v2"

const (
	fastTPS = 60
	idleTPS = 15
)

// pacer 人类思考时降低刷新率，电脑思考或有输入时恢复
type pacer struct {
	fast   bool
	booted bool
}

var pace pacer

func (p *pacer) wake() {
	if p.fast && p.booted {
		return
	}
	ebiten.SetTPS(fastTPS)
	p.fast, p.booted = true, true
}

func (p *pacer) idle() {
	if !p.fast && p.booted {
		return
	}
	ebiten.SetTPS(idleTPS)
	p.fast, p.booted = false, true
}

package model

import "slot_machine/internal/model"

// MinMatch минимальная длина совпадения для выплаты
const MinMatch = 3

// PayoutTable множители ставки на линию по длине совпадения
var PayoutTable = map[model.SymbolKind]map[int]int{
	model.Num1:    {3: 5, 4: 15, 5: 50},
	model.Num2:    {3: 3, 4: 10, 5: 25},
	model.Num3:    {3: 3, 4: 10, 5: 25},
	model.Num4:    {3: 2, 4: 8, 5: 20},
	model.Num5:    {3: 2, 4: 8, 5: 20},
	model.J:       {3: 1, 4: 4, 5: 10},
	model.Q:       {3: 1, 4: 4, 5: 10},
	model.K:       {3: 1, 4: 4, 5: 10},
	model.Scatter: {3: 5, 4: 20, 5: 100},
	model.Wild:    {3: 10, 4: 50, 5: 200},
}

// PlayLines 16 линий поля 5x3. 0 верхний ряд, 1 средний, 2 нижний
var PlayLines = [][5]int{
	// Прямые
	{0, 0, 0, 0, 0},
	{1, 1, 1, 1, 1},
	{2, 2, 2, 2, 2},
	// V и перевёрнутая V
	{0, 1, 2, 1, 0},
	{2, 1, 0, 1, 2},
	// Изгибы
	{0, 0, 1, 0, 0},
	{2, 2, 1, 2, 2},
	{1, 0, 0, 0, 1},
	{1, 2, 2, 2, 1},
	// Зигзаги
	{0, 1, 0, 1, 0},
	{2, 1, 2, 1, 2},
	{1, 0, 1, 0, 1},
	{1, 2, 1, 2, 1},
	// Крутые диагонали
	{0, 1, 1, 1, 2},
	{2, 1, 1, 1, 0},
	{0, 1, 2, 2, 2},
}

package main

import (
	"fmt"
)

// buttonGetRecipient is the literal reply-keyboard label that triggers
// a recipient lookup. Shells must render exactly this text.
const buttonGetRecipient = "🎁 Получить имя"

const msgStart = `Привет! 🎄

Если ты организатор — напиши /newgame и создай список участников.

Если ты участник — отправь мне код игры, который тебе дал организатор.
Например: A7F9.`

const msgHelp = `🎄 Тайный Санта — бот

Для организатора:
1. Напиши /newgame — я создам код игры.
2. В ответ пришли список участников: по одному «Имя Фамилия» в каждой строке.
3. Отправь участникам код игры и ссылку на бота.

Для участника:
1. Напиши /start.
2. Введи код игры от организатора (например: A7F9).
3. Потом введи свои имя и фамилию.
4. Нажми кнопку «🎁 Получить имя».

Бот:
- никому не даёт самого себя
- один и тот же человек выдаётся только одному участнику
- ты можешь нажимать кнопку сколько угодно — твой человек не поменяется.`

const msgUnknownCommand = "Неизвестная команда. Попробуй /help 🙂"

func msgNewGame(code string) string {
	return fmt.Sprintf(`Окей! 🎄
Код вашей игры: %s.

1️⃣ Сначала пришлите список участников одним сообщением.
Каждый участник — в отдельной строке, формат: «Имя Фамилия».
Минимум 2 человека.

2️⃣ Потом отправьте участникам код игры и ссылку на бота.`, code)
}

const msgRosterTooShort = `В списке должно быть минимум два участника.
Пришлите, пожалуйста, список ещё раз.`

const msgRosterRejected = `Ошибка в списке участников: после удаления дубликатов осталось меньше 2 участников.
Пришлите, пожалуйста, список ещё раз.`

func msgGameCreated(code string, participants int) string {
	return fmt.Sprintf(`Новая игра создана! 🎄
Код игры: %s
Участников: %d.

Теперь отправь участникам:
— ссылку на бота
— код игры: %s

Участники:
1) заходят к боту
2) пишут /start
3) вводят код игры
4) вводят свои имя и фамилию
5) нажимают «🎁 Получить имя»`, code, participants, code)
}

const msgNothingToReset = "У вас сейчас нет активной игры, сбрасывать нечего 🙂"

func msgResetDone(code string) string {
	return fmt.Sprintf("Игра с кодом %s полностью сброшена. Можно запустить новую через /newgame.", code)
}

const msgCodeNotFound = `Я не нашёл игру с таким кодом 😔
Проверь, правильно ли ты ввёл код (например: A7F9).`

func msgCodeAccepted(code string) string {
	return fmt.Sprintf(`Игра с кодом %s найдена! 🎄
Теперь напиши свои имя и фамилию так, как они есть в списке у организатора.`, code)
}

func msgAlreadyJoined(code string) string {
	return fmt.Sprintf(`Ты уже в игре с кодом %s 🎄
Напиши свои имя и фамилию или нажми кнопку «🎁 Получить имя».`, code)
}

const msgNameNotFound = `Я не нашёл тебя в списке участников 😔

Напиши имя и фамилию так, как они есть в списке у организатора,
в одну строку.

Например:
Евгения Дмитриева
Юлия Павликова`

func msgNameBound(display string) string {
	return fmt.Sprintf(`Отлично, %s! 🎄
Твоё имя записано.
Теперь нажми кнопку «🎁 Получить имя», чтобы узнать, кому ты даришь подарок.`, display)
}

const msgJoinFirst = `Сначала присоединись к игре:
1) /start
2) введи код игры от организатора
3) введи свои имя и фамилию 🙂`

const msgGameGone = `Похоже, игра уже была сброшена организатором 😔
Спросите у него, не создавал ли он новую игру.`

const msgSendNameFirst = "Сначала напиши своё имя и фамилию как в списках у организатора, чтобы я понял, кто ты 🙂"

func msgRecipient(name string) string {
	return fmt.Sprintf(`Твой человек: %s 🎁
Никому не рассказывай 😉`, name)
}

const msgAssignmentBroken = `Произошла внутренняя ошибка при поиске получателя 😔
Попроси организатора сбросить игру командой /reset и создать её заново.`
